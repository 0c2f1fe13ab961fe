package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatched(t *testing.T) (string, *Watcher) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "field.png")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	w, err := New(path, 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return path, w
}

func TestWatcher_CoalescesWrites(t *testing.T) {
	path, w := newWatched(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o644))
	}

	select {
	case got := <-w.Events:
		abs, err := filepath.Abs(path)
		require.NoError(t, err)
		assert.Equal(t, abs, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case got := <-w.Events:
		t.Fatalf("burst reported twice: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	path, w := newWatched(t)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.png"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_SeesReplaceByRename(t *testing.T) {
	path, w := newWatched(t)

	tmp := filepath.Join(filepath.Dir(path), "field.png.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v1"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-w.Events:
	case <-time.After(3 * time.Second):
		t.Fatal("rename over the file was not reported")
	}
}

func TestWatcher_CloseClosesChannels(t *testing.T) {
	_, w := newWatched(t)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("Events not closed")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "field.png"), 0)
	assert.Error(t, err)
}
