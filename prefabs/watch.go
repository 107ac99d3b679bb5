package prefabs

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the window in which repeated events for one path are
// dropped.
const DefaultDebounce = 100 * time.Millisecond

var (
	SpecExtensions   = []string{".yaml", ".yml"}
	ScriptExtensions = []string{".tengo"}
)

// Filter reports whether a changed path is delivered on Watcher.Events.
type Filter func(path string) bool

// Extensions matches paths by extension, ignoring case.
func Extensions(exts ...string) Filter {
	want := make([]string, len(exts))
	for i, e := range exts {
		want[i] = strings.ToLower(e)
	}
	return func(path string) bool {
		return slices.Contains(want, strings.ToLower(filepath.Ext(path)))
	}
}

func IsSpecFile(path string) bool {
	return Extensions(SpecExtensions...)(path)
}

func IsScriptFile(path string) bool {
	return Extensions(ScriptExtensions...)(path)
}

type WatchOptions struct {
	Dirs []string
	// Filter selects the paths to report. Nil reports every path.
	Filter Filter
	// Debounce defaults to DefaultDebounce when zero.
	Debounce time.Duration
}

// Watcher reports edits to files in the watched directories. Bursts of
// events for one path are collapsed.
type Watcher struct {
	watcher *fsnotify.Watcher
	filter  Filter
	recent  recent
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(opts WatchOptions) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range opts.Dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	filter := opts.Filter
	if filter == nil {
		filter = func(string) bool { return true }
	}
	window := opts.Debounce
	if window <= 0 {
		window = DefaultDebounce
	}

	watcher := &Watcher{
		watcher: w,
		filter:  filter,
		recent:  recent{window: window, seen: make(map[string]time.Time)},
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 || !w.filter(event.Name) {
				continue
			}
			if !w.recent.allow(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Drop errors while one is unread.
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// recent drops a path seen less than window ago.
type recent struct {
	window time.Duration
	seen   map[string]time.Time
}

func (r *recent) allow(path string, now time.Time) bool {
	if t, ok := r.seen[path]; ok && now.Sub(t) < r.window {
		return false
	}
	r.seen[path] = now
	return true
}
