// Package watcher watches a challenge-corpus directory for new or changed
// .golf fixtures and reports the ids of the ones that changed; it does not
// touch any cache itself.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vimgolf-core/vimgolf/internal/log"
)

// Watcher monitors a challenge directory for .golf fixture changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	onChange  chan string // changed challenge id
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	ChallengeDir string
	DebounceDur  time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(challengeDir string) Config {
	return Config{
		ChallengeDir: challengeDir,
		DebounceDur:  100 * time.Millisecond,
	}
}

// New creates a new challenge-corpus watcher.
func New(cfg Config) (*Watcher, error) {
	log.Debug(log.CatWatcher, "creating watcher", "dir", cfg.ChallengeDir, "debounce", cfg.DebounceDur)
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "failed to create fsnotify watcher", err)
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       cfg.ChallengeDir,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan string, 16),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the challenge directory. Returns a channel that
// receives the id of a changed challenge (its file base name, without
// extension) after the debounce window settles.
func (w *Watcher) Start() (<-chan string, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		log.ErrorErr(log.CatWatcher, "failed to watch directory", err, "dir", w.dir)
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}

	log.Info(log.CatWatcher, "started watching", "dir", w.dir)
	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	log.Debug(log.CatWatcher, "stopping watcher")
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			id := challengeID(event.Name)
			log.Debug(log.CatWatcher, "file event received", "file", event.Name, "op", event.Op.String())

			if t, exists := pending[id]; exists {
				t.Stop()
			}
			pending[id] = time.AfterFunc(w.debounce, func() {
				select {
				case w.onChange <- id:
				default:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "file watcher error", err)

		case <-w.done:
			for _, t := range pending {
				t.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports whether event is a write/create on a .golf fixture.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Ext(event.Name) == ".golf"
}

func challengeID(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
