package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name := <-w.Events:
		return name
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
		return ""
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatchOptions{Dirs: []string{dir}, Filter: IsSpecFile})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	target := filepath.Join(dir, "tile.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: tile\n"), 0o644))

	require.Equal(t, target, nextEvent(t, w))
}

func TestWatcherUsesCallerFilter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatchOptions{Dirs: []string{dir}, Filter: Extensions(".tengo")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tile.yaml"), []byte("name: tile\n"), 0o644))
	target := filepath.Join(dir, "spin.tengo")
	require.NoError(t, os.WriteFile(target, []byte("rotation := 1\n"), 0o644))

	require.Equal(t, target, nextEvent(t, w))
}

func TestWatcherNilFilterReportsEverything(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatchOptions{Dirs: []string{dir}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	target := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o644))

	require.Equal(t, target, nextEvent(t, w))
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(WatchOptions{Dirs: []string{t.TempDir()}})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	require.False(t, ok)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(WatchOptions{Dirs: []string{filepath.Join(t.TempDir(), "absent")}})
	require.Error(t, err)
}

func TestRecentDropsRepeats(t *testing.T) {
	r := recent{window: 100 * time.Millisecond, seen: make(map[string]time.Time)}
	start := time.Unix(0, 0)

	require.True(t, r.allow("a.yaml", start))
	require.False(t, r.allow("a.yaml", start.Add(50*time.Millisecond)))
	require.True(t, r.allow("b.yaml", start.Add(50*time.Millisecond)))
	require.True(t, r.allow("a.yaml", start.Add(150*time.Millisecond)))
}

func TestFileKinds(t *testing.T) {
	tests := []struct {
		path   string
		spec   bool
		script bool
	}{
		{"levels/iso.YAML", true, false},
		{"a.yml", true, false},
		{"a.json", false, false},
		{"scripts/spinner.tengo", false, true},
		{"x.lua", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.spec, IsSpecFile(tt.path))
			require.Equal(t, tt.script, IsScriptFile(tt.path))
		})
	}
}
