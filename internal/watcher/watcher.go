// Package watcher provides file system watching for externally modified
// profile documents.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventOp represents the type of file system operation.
type EventOp int

const (
	// OpCreate indicates a new profile document appeared.
	OpCreate EventOp = iota
	// OpModify indicates an existing profile document was rewritten.
	OpModify
	// OpDelete indicates a profile document was removed.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op EventOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ProfileEvent reports one external change to a profile document.
type ProfileEvent struct {
	// Name is the profile name, the document file name without extension.
	Name string
	// Type is the profile type, taken from the parent directory.
	Type string
	// Op is the operation that occurred (create, modify, delete).
	Op EventOp
	// Path is the absolute path of the document that changed.
	Path string
}

// ProfileWatcher watches the per-type directories of a profile root for
// document changes. Events are debounced: rapid successive changes to the
// same document collapse into the latest one. Backup companions and the
// sync log directory are ignored.
type ProfileWatcher struct {
	watcher  *fsnotify.Watcher
	events   chan ProfileEvent
	errors   chan error
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	root     string
	debounce time.Duration
}

// New creates a ProfileWatcher. The watcher must be started with Start()
// before it will emit events.
func New(debounce time.Duration) (*ProfileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &ProfileWatcher{
		watcher:  w,
		events:   make(chan ProfileEvent, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
		debounce: debounce,
	}, nil
}

// Start begins watching every per-type directory currently present under
// root. Directories created after Start are not picked up.
func (pw *ProfileWatcher) Start(root string) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return fmt.Errorf("watcher already running")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve profile root %s: %w", root, err)
	}
	pw.root = absRoot

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return fmt.Errorf("failed to read profile root %s: %w", absRoot, err)
	}

	var watched []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(absRoot, entry.Name())
		if err := pw.watcher.Add(dir); err != nil {
			for _, d := range watched {
				pw.watcher.Remove(d)
			}
			return fmt.Errorf("failed to watch profile directory %s: %w", dir, err)
		}
		watched = append(watched, dir)
	}
	if len(watched) == 0 {
		return fmt.Errorf("no profile directories under %s", absRoot)
	}

	pw.running = true
	pw.wg.Add(1)
	go pw.processEvents()

	return nil
}

// Stop stops watching and cleans up resources. It blocks until the event
// processing goroutine has exited.
func (pw *ProfileWatcher) Stop() error {
	pw.mu.Lock()
	if !pw.running {
		pw.mu.Unlock()
		return nil
	}
	pw.running = false
	pw.mu.Unlock()

	close(pw.done)

	if err := pw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	pw.wg.Wait()

	close(pw.events)
	close(pw.errors)

	return nil
}

// Events returns the channel that emits ProfileEvent notifications.
// This channel is closed when the watcher is stopped.
func (pw *ProfileWatcher) Events() <-chan ProfileEvent {
	return pw.events
}

// Errors returns the channel that emits error notifications.
// This channel is closed when the watcher is stopped.
func (pw *ProfileWatcher) Errors() <-chan error {
	return pw.errors
}

// IsRunning returns true if the watcher is currently running.
func (pw *ProfileWatcher) IsRunning() bool {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.running
}

// processEvents is the main event loop. Raw fsnotify events are collected
// into a pending set keyed by path and flushed once the debounce window
// passes without further changes.
func (pw *ProfileWatcher) processEvents() {
	defer pw.wg.Done()

	pending := make(map[string]ProfileEvent)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-pw.done:
			return

		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			pe, ok := pw.convertEvent(event)
			if !ok {
				continue
			}
			pending[pe.Path] = pe
			if timer == nil {
				timer = time.NewTimer(pw.debounce)
				timerC = timer.C
			} else {
				timer.Reset(pw.debounce)
			}

		case <-timerC:
			for _, pe := range pending {
				select {
				case pw.events <- pe:
				case <-pw.done:
					return
				}
			}
			pending = make(map[string]ProfileEvent)
			timer = nil
			timerC = nil

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case pw.errors <- err:
			case <-pw.done:
				return
			}
		}
	}
}

// convertEvent converts an fsnotify event to a ProfileEvent.
// Returns (ProfileEvent{}, false) for events that should be ignored:
// non-document files, backup companions and anything under the log
// directory.
func (pw *ProfileWatcher) convertEvent(event fsnotify.Event) (ProfileEvent, bool) {
	if !strings.HasSuffix(event.Name, ".xml") || strings.HasSuffix(event.Name, ".bak") {
		return ProfileEvent{}, false
	}

	absPath, err := filepath.Abs(event.Name)
	if err != nil {
		return ProfileEvent{}, false
	}
	dir := filepath.Dir(absPath)
	if filepath.Base(dir) == "logs" {
		return ProfileEvent{}, false
	}
	if filepath.Dir(dir) != pw.root {
		return ProfileEvent{}, false
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		// Treat rename as delete (the new name will trigger a create)
		op = OpDelete
	default:
		// Ignore chmod and other events
		return ProfileEvent{}, false
	}

	return ProfileEvent{
		Name: strings.TrimSuffix(filepath.Base(absPath), ".xml"),
		Type: filepath.Base(dir),
		Op:   op,
		Path: absPath,
	}, true
}
