package session

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/jamiecraik/behaviorscore/internal/logging"
)

// DefaultDebounce is the quiet period after a filesystem notification
// before a transcript is read, giving the producing process time to
// finish writing.
const DefaultDebounce = 100 * time.Millisecond

// Watcher observes the session root for transcript create/write events
// and drives the ingestion pipeline. Start performs one full scan before
// registering the watch, so pre-existing files are captured even when
// watch registration races with writers.
type Watcher struct {
	root     string
	proc     *Processor
	scan     *Orchestrator
	debounce time.Duration
	log      *logrus.Entry

	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher over the given root. A non-positive
// debounce falls back to DefaultDebounce.
func NewWatcher(root string, proc *Processor, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:     root,
		proc:     proc,
		scan:     NewOrchestrator(root, proc),
		debounce: debounce,
		log:      logging.NewLogger("watcher"),
		done:     make(chan struct{}),
	}
}

// Start scans the root once, then subscribes to filesystem notifications
// and processes candidate events until Stop is called. It returns after
// the watch is registered; event handling runs in the background.
func (w *Watcher) Start() error {
	if _, err := w.scan.Scan(); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	w.fsw = fsw

	if err := w.watchTree(w.root); err != nil {
		fsw.Close()
		return err
	}

	w.wg.Add(1)
	go w.loop()

	w.log.WithField("root", w.root).Info("Watching for new sessions")
	return nil
}

// Stop shuts the watcher down, letting any in-flight processing step
// finish before releasing the watch handle. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if w.fsw != nil {
			w.fsw.Close()
		}
	})
	w.wg.Wait()
}

// watchTree registers watches for dir and every subdirectory.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.WithError(err).WithField("path", path).Warn("Cannot watch directory entry")
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("Filesystem watch error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	// New directories need their own watches; the session recorder
	// nests transcripts under dated subdirectories.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watchTree(event.Name); err != nil {
				w.log.WithError(err).Warn("Failed to watch new directory")
			}
			w.dispatchExisting(event.Name)
			return
		}
	}

	if !IsTranscript(event.Name) {
		return
	}
	w.dispatch(event.Name)
}

// dispatchExisting queues transcripts that were written into a directory
// before its watch was registered.
func (w *Watcher) dispatchExisting(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && IsTranscript(path) {
			w.dispatch(path)
		}
		return nil
	})
}

// dispatch debounces one candidate path and feeds it to the processor.
// Each event waits out its own quiet period; events for different files
// never block each other. Duplicate notifications for the same file are
// absorbed by the dedup re-check inside ProcessFile.
func (w *Watcher) dispatch(path string) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		select {
		case <-time.After(w.debounce):
		case <-w.done:
			return
		}

		if _, err := w.proc.ProcessFile(path); err != nil {
			// Store failures must not halt the watcher.
			w.log.WithError(err).WithField("path", path).Error("Failed to process session")
		}
	}()
}
