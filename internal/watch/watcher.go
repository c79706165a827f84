// Package watch observes a site's source tree and emits debounced change
// events for the dev rebuild loop.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is one debounced source modification.
type Change struct {
	Path string
	Time time.Time
}

// Options configures a Watcher.
type Options struct {
	// Root is the site source directory to watch recursively.
	Root string

	// Ignore are directory or file basename patterns to skip. Build output
	// directories must be ignored or the rebuild loop would feed itself.
	Ignore []string

	// Debounce collapses rapid successive events per path.
	Debounce time.Duration
}

// DefaultOptions watches a Next.js site source tree.
func DefaultOptions(root string) Options {
	return Options{
		Root: root,
		Ignore: []string{
			".git",
			"node_modules",
			".next",
			".open-next",
			".turbo",
			"*.log",
		},
		Debounce: 200 * time.Millisecond,
	}
}

// Watcher emits Change events for a site source tree.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
	changes chan Change

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates and starts a watcher over opts.Root.
func New(ctx context.Context, opts Options) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		opts:    opts,
		watcher: fsWatcher,
		changes: make(chan Change, 64),
		pending: make(map[string]*time.Timer),
	}
	if err := w.addRecursive(opts.Root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.run(ctx)
	return w, nil
}

// Changes returns the channel of debounced source changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.ignored(info.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	for _, part := range strings.Split(event.Name, string(filepath.Separator)) {
		if w.ignored(part) {
			return
		}
	}

	// new directories need to be picked up for future events
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
		}
	}

	w.debounce(event.Name)
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.opts.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case w.changes <- Change{Path: path, Time: time.Now()}:
		default:
			// channel full, drop
		}
	})
}

func (w *Watcher) ignored(name string) bool {
	for _, pattern := range w.opts.Ignore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
