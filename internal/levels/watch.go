package levels

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/amalg/go-keydoor/internal/game"
)

// debounce is how long a file must stay unchanged before it is reported.
// Editors often write a file several times per save.
const debounce = 100 * time.Millisecond

// Watcher reports level files that changed on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories for level file changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
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

// Close stops the watcher and closes its channels. It is safe to call more
// than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// A file is reported once it has been quiet for the debounce window, so
	// a truncate followed by a write yields one event after the write.
	pending := make(map[string]*time.Timer)
	ready := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

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
			name := event.Name
			if t, ok := pending[name]; ok {
				t.Reset(debounce)
				continue
			}
			pending[name] = time.AfterFunc(debounce, func() {
				select {
				case ready <- name:
				case <-w.closeCh:
				}
			})
		case name := <-ready:
			delete(pending, name)
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Previous error not consumed yet
			}
		case <-w.closeCh:
			return
		}
	}
}

// Reload reloads the sequence from dir after every change and hands it to
// apply. A sequence that fails to load or validate is logged and skipped, so
// a half-saved file never replaces a playable set. Reload returns when ctx is
// done or the watcher is closed.
func (w *Watcher) Reload(ctx context.Context, dir string, cfg game.Config, log logrus.FieldLogger, apply func([]game.Level) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			entry := log.WithField("file", filepath.Base(name))
			levels, err := LoadAll(dir, cfg)
			if err != nil {
				entry.WithError(err).Warn("level reload failed")
				continue
			}
			if err := apply(levels); err != nil {
				entry.WithError(err).Warn("level reload rejected")
				continue
			}
			entry.WithField("levels", len(levels)).Info("levels reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("level watcher error")
		}
	}
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
