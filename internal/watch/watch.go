// Package watch re-runs detection when a dataset directory changes.
//
// Editors often write a file several times per save, so events are debounced:
// the callback fires once the directory has been quiet for the debounce
// interval, with every path that changed in the meantime. Callbacks run one
// at a time on the watcher goroutine, so a slow detection run delays the next
// one instead of overlapping it.
package watch

import (
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 200 * time.Millisecond

// Editor droppings that should never trigger a run.
var ignoreSuffixes = []string{".swp", ".swx", ".tmp", "~", ".DS_Store"}

// Watcher watches one dataset directory.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	done    chan struct{}
	exited  chan struct{}
	started bool
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a watcher. A debounce of zero or less selects
// DefaultDebounce; a nil logger discards watch errors.
func NewWatcher(debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Watcher{
		fw:       fw,
		debounce: debounce,
		logger:   logger,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}, nil
}

// Watch starts monitoring dir. onChange receives the sorted, de-duplicated
// paths that changed during one burst of activity.
//
// Watch must be called at most once per Watcher.
func (w *Watcher) Watch(dir string, onChange func(paths []string)) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.fw.Add(absDir); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.started = true
	go w.loop(onChange)
	return nil
}

func (w *Watcher) loop(onChange func(paths []string)) {
	defer close(w.exited)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if shouldIgnorePath(event.Name) {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			onChange(paths)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Printf("watch error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring and waits for a running callback to return. It must
// not be called from inside onChange. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.done)
	err := w.fw.Close()
	started := w.started
	w.mu.Unlock()

	if started {
		<-w.exited
	}
	return err
}

// shouldIgnorePath returns true if the file path should not trigger onChange.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
