package assets

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/core"
)

var ErrWatcherClosed = errors.New("watcher already closed")

// DefaultDebounce groups the burst of events an editor produces on save.
const DefaultDebounce = 100 * time.Millisecond

type AssetInfo struct {
	Path       string
	LastLoaded time.Time
}

// ChangeHandler is called from the Run goroutine with the absolute path of a
// watched file that was written or recreated.
type ChangeHandler func(path string)

// Watcher reports changes to individual files. It watches the parent
// directory of every file so replacements done by rename are seen too.
type Watcher struct {
	assets   map[string]AssetInfo
	dirs     map[string]int
	mutex    sync.RWMutex
	debounce time.Duration
	onChange ChangeHandler

	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewWatcher(onChange ChangeHandler, debounce time.Duration) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		assets:   make(map[string]AssetInfo),
		dirs:     make(map[string]int),
		debounce: debounce,
		onChange: onChange,
		fsnotify: fsWatch,
	}, nil
}

// Add starts watching the named file.
func (w *Watcher) Add(name string) error {
	path, err := filepath.Abs(name)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", name)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.isClosed {
		return ErrWatcherClosed
	}
	if _, exists := w.assets[path]; exists {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsnotify.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	w.dirs[dir]++
	w.assets[path] = AssetInfo{Path: path, LastLoaded: time.Now()}
	return nil
}

// Remove stops watching the named file.
func (w *Watcher) Remove(name string) error {
	path, err := filepath.Abs(name)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", name)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, exists := w.assets[path]; !exists {
		return nil
	}
	delete(w.assets, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] > 0 || w.isClosed {
		return nil
	}
	delete(w.dirs, dir)
	return w.fsnotify.Remove(dir)
}

// Get returns the bookkeeping of a watched file.
func (w *Watcher) Get(name string) (AssetInfo, bool) {
	path, err := filepath.Abs(name)
	if err != nil {
		return AssetInfo{}, false
	}
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	info, ok := w.assets[path]
	return info, ok
}

// Run dispatches changes until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 || !w.isWatched(e.Name) {
				continue
			}
			pending[filepath.Clean(e.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			for path := range pending {
				w.touch(path)
				core.LogDebug("asset changed: %s", path)
				if w.onChange != nil {
					w.onChange(path)
				}
			}
			clear(pending)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			core.LogError(err.Error())

		case <-ctx.Done():
			return w.Close()
		}
	}
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.isClosed {
		return nil
	}
	w.isClosed = true
	return w.fsnotify.Close()
}

func (w *Watcher) isWatched(name string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	_, ok := w.assets[filepath.Clean(name)]
	return ok
}

func (w *Watcher) touch(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if info, ok := w.assets[path]; ok {
		info.LastLoaded = time.Now()
		w.assets[path] = info
	}
}
