package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan []string, timeout time.Duration) ([]string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return nil, false
	}
}

func startWatcher(t *testing.T, dir string, debounce time.Duration) <-chan []string {
	t.Helper()
	w, err := NewWatcher(debounce, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	changed := make(chan []string, 10)
	require.NoError(t, w.Watch(dir, func(paths []string) {
		changed <- paths
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	radar := filepath.Join(dir, "radar_data.txt")
	require.NoError(t, os.WriteFile(radar, []byte("--o--"), 0o644))

	changed := startWatcher(t, dir, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(radar, []byte("--oo-"), 0o644))

	paths, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok, "expected callback for file change")
	assert.Contains(t, paths, radar)
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	changed := startWatcher(t, dir, 150*time.Millisecond)

	a := filepath.Join(dir, "invader_a.txt")
	b := filepath.Join(dir, "invader_b.txt")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(a, []byte("oo"), 0o644))
		require.NoError(t, os.WriteFile(b, []byte("oo"), 0o644))
	}

	paths, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok, "expected callback for burst")
	assert.Equal(t, []string{a, b}, paths)

	_, again := waitForCallback(changed, 400*time.Millisecond)
	assert.False(t, again, "a burst must produce a single callback")
}

func TestWatcher_IgnoresEditorFiles(t *testing.T) {
	dir := t.TempDir()
	changed := startWatcher(t, dir, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".radar_data.txt.swp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invader_1.txt~"), []byte("x"), 0o644))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "editor files must not trigger a run")
}

func TestWatcher_CallbacksDoNotOverlap(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	running, maxRunning, calls := 0, 0, 0
	require.NoError(t, w.Watch(dir, func([]string) {
		mu.Lock()
		running++
		calls++
		maxRunning = max(maxRunning, running)
		mu.Unlock()

		time.Sleep(60 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
	}))
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 4; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "radar_data.txt"), []byte("o"), 0o644))
		time.Sleep(40 * time.Millisecond)
	}
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 1)
	assert.Equal(t, 1, maxRunning)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	require.NoError(t, w.Watch(t.TempDir(), func([]string) {}))
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_StopWithoutWatch(t *testing.T) {
	w, err := NewWatcher(0, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(0, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing"), func([]string) {}))
}

func TestShouldIgnorePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/data/radar_data.txt", false},
		{"/data/invader_1.png", false},
		{"/data/.hidden", true},
		{"/data/invader_1.txt.swp", true},
		{"/data/invader_1.txt~", true},
		{"/data/.DS_Store", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldIgnorePath(tt.path))
		})
	}
}
