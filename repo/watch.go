package repo

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to level files in a FileRepository directory so the
// browse step can refresh its list while levels are written by other tools.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dir for level file changes. Events are debounced per
// path; the channel delivers level ids.
func NewWatcher(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Safe to call twice. The Events and Errors channels
// stay open so a concurrent send in run never hits a closed channel; readers
// stop seeing deliveries once run returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isLevelFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			base := filepath.Base(event.Name)
			// Drop rather than block when nobody is draining.
			select {
			case w.Events <- strings.TrimSuffix(base, filepath.Ext(base)):
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			trySendErr(w.Errors, err)
		case <-w.closeCh:
			return
		}
	}
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// trySendErr drops the error when the buffer is full; nobody is required to
// drain Errors and the watch loop must never block on it.
func trySendErr(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}
