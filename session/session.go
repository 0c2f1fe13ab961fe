// Package session is the boundary between the pure search engine and its
// collaborators (CLI, UI, renderer). A Session remembers the active field,
// the image it came from and the search limits, logs every search and, when
// a run store is attached, records runs and answers repeated queries from it.
//
// The engine itself stays a pure function: Session only snapshots the active
// field under its lock and then calls dijkstra.FindPath on the caller's
// goroutine.
package session

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/scissors/dijkstra"
	"github.com/katalvlaran/scissors/gridgraph"
	"github.com/katalvlaran/scissors/imageio"
	"github.com/katalvlaran/scissors/internal/logging"
	"github.com/katalvlaran/scissors/internal/store"
)

var (
	// ErrNoField is returned when a search or dimension query runs before Load.
	ErrNoField = errors.New("session: no field loaded")
	// ErrNoSource is returned by Reload when the field did not come from a file.
	ErrNoSource = errors.New("session: field has no source file to reload")
)

// RunStore persists runs and finds earlier identical ones.
// *store.Store satisfies it.
type RunStore interface {
	Lookup(checksum string, start, end gridgraph.Cell, maxCost, wall int64) (store.Run, bool, error)
	SaveRun(r store.Run) (int64, error)
}

// Result is a search outcome plus whether it was served from the run store.
type Result struct {
	dijkstra.Result
	Cached bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore attaches a run store. A nil store is ignored.
func WithStore(rs RunStore) Option {
	return func(s *Session) {
		if rs != nil {
			s.store = rs
		}
	}
}

// WithMaxCost caps path cost; 0 disables the cap. Negative values are ignored.
func WithMaxCost(c int64) Option {
	return func(s *Session) {
		if c >= 0 {
			s.maxCost = c
		}
	}
}

// WithWallThreshold marks edges of weight ≥ t impassable; 0 disables walls.
// Negative values are ignored.
func WithWallThreshold(t int64) Option {
	return func(s *Session) {
		if t >= 0 {
			s.wall = t
		}
	}
}

// WithLuma selects the grayscale conversion used by LoadFile.
func WithLuma(l imageio.Luma) Option {
	return func(s *Session) { s.luma = l }
}

// WithMaxPixels sets the LoadFile size guard; 0 disables it.
func WithMaxPixels(n int) Option {
	return func(s *Session) { s.maxPixels = n }
}

// Session holds the active field. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	logger    *log.Logger
	store     RunStore
	luma      imageio.Luma
	maxPixels int
	maxCost   int64
	wall      int64

	field    *gridgraph.GridGraph
	checksum string
	source   string
	img      image.Image
}

// New builds a Session with no field loaded.
func New(opts ...Option) *Session {
	s := &Session{logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load makes g the active field. The previous field and image are dropped.
func (s *Session) Load(g *gridgraph.GridGraph) error {
	if g == nil {
		return ErrNoField
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setField(g, "", nil)
	return nil
}

// LoadFile decodes the image at path and makes it the active field.
func (s *Session) LoadFile(path string) error {
	g, img, err := imageio.LoadField(path, s.luma, s.maxPixels)
	if err != nil {
		s.logger.Error("could not load image", "path", path, "error", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setField(g, path, img)
	return nil
}

// Reload re-reads the file the active field was loaded from.
func (s *Session) Reload() error {
	s.mu.Lock()
	src := s.source
	s.mu.Unlock()
	if src == "" {
		return ErrNoSource
	}
	return s.LoadFile(src)
}

func (s *Session) setField(g *gridgraph.GridGraph, source string, img image.Image) {
	s.field = g
	s.checksum = store.Checksum(g)
	s.source = source
	s.img = img
	s.logger.Info("loaded field", "width", g.Width(), "height", g.Height(), "source", source)
}

// Dims returns the height and width of the active field.
func (s *Session) Dims() (height, width int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.field == nil {
		return 0, 0, ErrNoField
	}
	return s.field.Height(), s.field.Width(), nil
}

// Image returns the decoded image behind the active field, or nil when the
// field was loaded from memory.
func (s *Session) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.img
}

// Source returns the file the active field came from, if any.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.source
}

// FindPath searches the active field from start to end.
//
// Errors: ErrNoField before Load; otherwise whatever dijkstra.FindPath
// returns (ErrOutOfBounds, ErrNoPath, ErrBrokenPredecessors). Store failures
// are logged and never fail the search.
func (s *Session) FindPath(start, end gridgraph.Cell) (Result, error) {
	s.mu.Lock()
	g, sum, src := s.field, s.checksum, s.source
	s.mu.Unlock()
	if g == nil {
		return Result{}, ErrNoField
	}

	logger := s.logger.With("start", start, "end", end)

	if res, hit, err := s.cached(logger, sum, start, end); hit {
		return res, err
	}

	began := time.Now()
	res, err := dijkstra.FindPath(g, start, end, s.searchOptions()...)
	elapsed := time.Since(began)

	switch {
	case errors.Is(err, dijkstra.ErrNoPath):
		logger.Warn("no path found", "settled", res.Settled, "elapsed", elapsed)
		s.record(logger, store.Run{Checksum: sum, Source: src, Height: g.Height(), Width: g.Width(),
			Start: start, End: end, MaxCost: s.maxCost, WallThreshold: s.wall, Status: store.StatusNoPath})
		return Result{}, err
	case errors.Is(err, dijkstra.ErrOutOfBounds):
		logger.Warn("rejected search", "error", err)
		return Result{}, err
	case err != nil:
		logger.Error("search failed", "error", err)
		return Result{}, fmt.Errorf("session: %w", err)
	}

	logger.Info("path found", "cost", res.Cost, "length", len(res.Path), "settled", res.Settled, "elapsed", elapsed)
	s.record(logger, store.Run{Checksum: sum, Source: src, Height: g.Height(), Width: g.Width(),
		Start: start, End: end, MaxCost: s.maxCost, WallThreshold: s.wall,
		Status: store.StatusOK, Cost: res.Cost, Path: res.Path})

	return Result{Result: res}, nil
}

// cached answers from the run store. hit is false when there is no store,
// no earlier run, or the lookup failed; err carries the stored outcome.
func (s *Session) cached(logger *log.Logger, sum string, start, end gridgraph.Cell) (res Result, hit bool, err error) {
	if s.store == nil {
		return Result{}, false, nil
	}
	run, ok, lerr := s.store.Lookup(sum, start, end, s.maxCost, s.wall)
	if lerr != nil {
		logger.Warn("run lookup failed", "error", lerr)
		return Result{}, false, nil
	}
	if !ok {
		return Result{}, false, nil
	}
	logger.Debug("served from run store", "run", run.ID, "status", run.Status)
	if run.Status == store.StatusNoPath {
		return Result{Cached: true}, true, dijkstra.ErrNoPath
	}
	return Result{Result: dijkstra.Result{Path: run.Path, Cost: run.Cost}, Cached: true}, true, nil
}

func (s *Session) record(logger *log.Logger, run store.Run) {
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveRun(run); err != nil {
		logger.Warn("could not record run", "error", err)
	}
}

func (s *Session) searchOptions() []dijkstra.Option {
	var opts []dijkstra.Option
	if s.maxCost > 0 {
		opts = append(opts, dijkstra.WithMaxCost(s.maxCost))
	}
	if s.wall > 0 {
		opts = append(opts, dijkstra.WithWallThreshold(s.wall))
	}
	return opts
}
