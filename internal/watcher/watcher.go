// Package watcher reports changes to the widgets folder while the host runs.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/widgethost/internal/config"
)

// DefaultDebounce is the quiet period before a burst of changes is reported.
const DefaultDebounce = 100 * time.Millisecond

// Event reports that a widget folder was added, removed or had its metadata
// changed. Folder is the widget folder, or the widgets directory itself.
type Event struct {
	Folder string
	Path   string
}

// Watcher watches the widgets directory and each widget folder in it.
type Watcher struct {
	dir        string
	debounce   time.Duration
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once

	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

// New creates a watcher for the widgets directory dir.
func New(dir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		dir:        filepath.Clean(dir),
		debounce:   DefaultDebounce,
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		timers:     make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start adds the watches and starts processing events.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.watchFolder(filepath.Join(w.dir, entry.Name()))
		}
	}

	log.Printf("[watcher] Watching %s (%d folders)", w.dir, len(w.fsWatcher.WatchList())-1)

	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.timersMu.Lock()
		for path, timer := range w.timers {
			timer.Stop()
			delete(w.timers, path)
		}
		w.timersMu.Unlock()
	})
}

func (w *Watcher) watchFolder(folder string) {
	if err := w.fsWatcher.Add(folder); err != nil {
		log.Printf("[watcher] Warning: failed to watch %s: %v", folder, err)
	}
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	folder, ok := w.classify(event)
	if !ok {
		return
	}

	// New widget folders get their own watch so metadata edits are seen.
	if event.Op&fsnotify.Create != 0 && filepath.Dir(event.Name) == w.dir {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchFolder(event.Name)
		}
	}

	path := event.Name
	w.debounceEvent(folder, func() {
		w.emit(Event{Folder: folder, Path: path})
	})
}

// classify reports whether event affects the widget set and which folder it
// belongs to.
func (w *Watcher) classify(event fsnotify.Event) (string, bool) {
	dir := filepath.Dir(event.Name)
	name := filepath.Base(event.Name)

	switch {
	case dir == w.dir:
		// Folders appearing or disappearing. Writes to loose files are noise.
		if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
			return "", false
		}
		return event.Name, true
	case filepath.Dir(dir) == w.dir:
		// Rename covers editors that save through a temporary file.
		if name != config.MetadataFileName && name != config.ContentFileName {
			return "", false
		}
		if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
			return "", false
		}
		return dir, true
	default:
		return "", false
	}
}

// debounceEvent debounces events for the same folder.
func (w *Watcher) debounceEvent(key string, fn func()) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, ok := w.timers[key]; ok {
		timer.Stop()
	}

	w.timers[key] = time.AfterFunc(w.debounce, func() {
		w.timersMu.Lock()
		delete(w.timers, key)
		w.timersMu.Unlock()
		fn()
	})
}

func (w *Watcher) emit(ev Event) {
	log.Printf("[watcher] Change detected in %s", ev.Folder)
	select {
	case w.eventsChan <- ev:
	case <-w.done:
	default:
		// Nobody is draining; one pending event is enough.
	}
}
