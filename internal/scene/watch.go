package scene

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/lathe/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports when a scene file has been rewritten.
//
// The parent directory is watched rather than the file itself, since many
// editors save by writing a temp file and renaming it over the original.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan string
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	log      *zap.Logger
}

// Watch starts watching path. Changes are delivered at most once per
// debounce window; a pending notification is never duplicated.
func Watch(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		changes:  make(chan string, 1),
		done:     make(chan struct{}),
		log:      logger.Named("watch"),
	}
	w.wg.Add(1)
	go w.loop()

	w.log.Debug("watching scene", zap.String("path", abs))
	return w, nil
}

// Changes delivers the watched path after each settled modification.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			select {
			case w.changes <- w.path:
			default:
			}
		}
	}
}
