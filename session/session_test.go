package session

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scissors/dijkstra"
	"github.com/katalvlaran/scissors/gridgraph"
	"github.com/katalvlaran/scissors/imageio"
	"github.com/katalvlaran/scissors/internal/config"
	"github.com/katalvlaran/scissors/internal/logging"
	"github.com/katalvlaran/scissors/internal/store"
)

func mustGrid(t *testing.T, rows [][]int) *gridgraph.GridGraph {
	t.Helper()
	g, err := gridgraph.NewGridGraph(rows)
	require.NoError(t, err)
	return g
}

func memStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func cell(r, c int) gridgraph.Cell { return gridgraph.Cell{Row: r, Col: c} }

// failingStore errors on every call.
type failingStore struct {
	mu    sync.Mutex
	saves int
}

func (f *failingStore) Lookup(string, gridgraph.Cell, gridgraph.Cell, int64, int64) (store.Run, bool, error) {
	return store.Run{}, false, errors.New("lookup down")
}

func (f *failingStore) SaveRun(store.Run) (int64, error) {
	f.mu.Lock()
	f.saves++
	f.mu.Unlock()
	return 0, errors.New("save down")
}

func TestSession_NoField(t *testing.T) {
	s := New()

	_, err := s.FindPath(cell(0, 0), cell(0, 0))
	assert.ErrorIs(t, err, ErrNoField)

	_, _, err = s.Dims()
	assert.ErrorIs(t, err, ErrNoField)

	assert.ErrorIs(t, s.Load(nil), ErrNoField)
	assert.ErrorIs(t, s.Reload(), ErrNoSource)
	assert.Nil(t, s.Image())
}

func TestSession_LoadAndFind(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LogConfig{Level: "info"})
	s := New(WithLogger(logger))

	require.NoError(t, s.Load(mustGrid(t, [][]int{{0, 0, 0}, {0, 0, 0}})))
	h, w, err := s.Dims()
	require.NoError(t, err)
	assert.Equal(t, 2, h)
	assert.Equal(t, 3, w)
	assert.Empty(t, s.Source())

	res, err := s.FindPath(cell(0, 0), cell(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Cost)
	assert.Len(t, res.Path, 4)
	assert.False(t, res.Cached)

	assert.Contains(t, buf.String(), "loaded field")
	assert.Contains(t, buf.String(), "path found")
}

func TestSession_SameCell(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(mustGrid(t, [][]int{{5}})))

	res, err := s.FindPath(cell(0, 0), cell(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []gridgraph.Cell{cell(0, 0)}, res.Path)
	assert.Zero(t, res.Cost)
}

func TestSession_OutOfBoundsNotRecorded(t *testing.T) {
	st := memStore(t)
	s := New(WithStore(st))
	require.NoError(t, s.Load(mustGrid(t, [][]int{{1, 2}})))

	_, err := s.FindPath(cell(0, 0), cell(0, 2))
	assert.ErrorIs(t, err, dijkstra.ErrOutOfBounds)
	_, err = s.FindPath(cell(-1, 0), cell(0, 1))
	assert.ErrorIs(t, err, dijkstra.ErrOutOfBounds)

	runs, err := st.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSession_StoreCachesResults(t *testing.T) {
	st := memStore(t)
	s := New(WithStore(st))
	require.NoError(t, s.Load(mustGrid(t, [][]int{
		{10, 10, 10},
		{10, 200, 10},
		{10, 10, 10},
	})))

	first, err := s.FindPath(cell(0, 0), cell(2, 2))
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Positive(t, first.Settled)

	second, err := s.FindPath(cell(0, 0), cell(2, 2))
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Cost, second.Cost)

	runs, err := st.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1, "cache hits are not recorded again")
	assert.Equal(t, store.StatusOK, runs[0].Status)

	// A new field with different values misses the cache.
	require.NoError(t, s.Load(mustGrid(t, [][]int{
		{10, 10, 10},
		{10, 11, 10},
		{10, 10, 10},
	})))
	third, err := s.FindPath(cell(0, 0), cell(2, 2))
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestSession_NoPathRecordedAndCached(t *testing.T) {
	st := memStore(t)
	s := New(WithStore(st), WithWallThreshold(100))
	require.NoError(t, s.Load(mustGrid(t, [][]int{{0, 255, 0}})))

	res, err := s.FindPath(cell(0, 0), cell(0, 2))
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
	assert.False(t, res.Cached)

	runs, err := st.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, store.StatusNoPath, runs[0].Status)
	assert.Equal(t, int64(100), runs[0].WallThreshold)

	res, err = s.FindPath(cell(0, 0), cell(0, 2))
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)
	assert.True(t, res.Cached, "no-path answer served from the run store")
	assert.Empty(t, res.Path)

	runs, err = st.RecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSession_MaxCost(t *testing.T) {
	s := New(WithMaxCost(2))
	require.NoError(t, s.Load(mustGrid(t, [][]int{{0, 0, 0, 0}})))

	_, err := s.FindPath(cell(0, 0), cell(0, 3))
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)

	res, err := s.FindPath(cell(0, 0), cell(0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Cost)
}

func TestSession_FailingStoreDoesNotFailSearch(t *testing.T) {
	fs := &failingStore{}
	s := New(WithStore(fs))
	require.NoError(t, s.Load(mustGrid(t, [][]int{{1, 2, 3}})))

	res, err := s.FindPath(cell(0, 0), cell(0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Cost)
	assert.Equal(t, 1, fs.saves)
}

func TestSession_LoadFileAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.png")
	writeGray := func(w, h int) {
		img := image.NewGray(image.Rect(0, 0, w, h))
		for i := range img.Pix {
			img.Pix[i] = uint8(i * 10)
		}
		require.NoError(t, imageio.SavePNG(path, img))
	}
	writeGray(4, 3)

	s := New(WithLuma(imageio.LumaBT601), WithMaxPixels(100))
	require.NoError(t, s.LoadFile(path))
	h, w, err := s.Dims()
	require.NoError(t, err)
	assert.Equal(t, 3, h)
	assert.Equal(t, 4, w)
	assert.Equal(t, path, s.Source())
	require.NotNil(t, s.Image())
	assert.Equal(t, color.Gray{Y: 10}, color.GrayModel.Convert(s.Image().At(1, 0)))

	writeGray(5, 2)
	require.NoError(t, s.Reload())
	h, w, err = s.Dims()
	require.NoError(t, err)
	assert.Equal(t, 2, h)
	assert.Equal(t, 5, w)

	// Loading from memory forgets the source.
	require.NoError(t, s.Load(mustGrid(t, [][]int{{1}})))
	assert.ErrorIs(t, s.Reload(), ErrNoSource)
	assert.Nil(t, s.Image())
}

func TestSession_LoadFileErrorKeepsField(t *testing.T) {
	s := New(WithMaxPixels(4))
	require.NoError(t, s.Load(mustGrid(t, [][]int{{1, 2}})))

	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, imageio.SavePNG(path, image.NewGray(image.Rect(0, 0, 3, 3))))
	assert.ErrorIs(t, s.LoadFile(path), imageio.ErrTooLarge)

	assert.Error(t, s.LoadFile(filepath.Join(t.TempDir(), "missing.png")))
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	h, w, err := s.Dims()
	require.NoError(t, err)
	assert.Equal(t, 1, h)
	assert.Equal(t, 2, w)
}

func TestSession_ConcurrentFindPath(t *testing.T) {
	s := New(WithStore(memStore(t)))
	require.NoError(t, s.Load(mustGrid(t, [][]int{
		{1, 5, 9, 2},
		{3, 3, 3, 3},
		{8, 1, 0, 7},
	})))

	want, err := s.FindPath(cell(0, 0), cell(2, 3))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.FindPath(cell(0, 0), cell(2, 3))
			assert.NoError(t, err)
			assert.Equal(t, want.Path, got.Path)
			assert.Equal(t, want.Cost, got.Cost)
		}()
	}
	wg.Wait()
}
