// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scenario

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the wait after the last file event before a reload
// fires. Editors emit bursts of events per save; one reload per burst is
// enough.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the scenario library when files in its directory change.
//
// # Description
//
// Watches a single flat directory for changes to scenario files and fires
// the onChange callback after a debounce window. The callback runs on the
// watcher's goroutine, one invocation at a time.
//
// # Thread Safety
//
// Safe for concurrent use. Start and Stop are idempotent.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration

	// Channels for communication
	events   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.RWMutex
	watching bool
}

// NewWatcher creates a watcher over a scenario directory.
//
// # Inputs
//
//   - dir: The flat directory holding scenario files.
//   - debounce: Quiet period before onChange fires. Non-positive selects
//     DefaultDebounce.
//   - onChange: Called after each debounced burst of changes.
//
// # Outputs
//
//   - *Watcher: Ready-to-use watcher (call Start to begin watching).
//   - error: Non-nil if the underlying notifier could not be created.
func NewWatcher(dir string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		dir:      dir,
		watcher:  watcher,
		onChange: onChange,
		debounce: debounce,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for scenario file changes.
//
// # Description
//
// Spawns two goroutines: an event processor that filters fsnotify events
// down to scenario files, and a debouncer that coalesces bursts into one
// onChange call. Both exit when Stop is called or the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil // Already watching
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)

	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching returns true if the watcher is currently active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

// processEvents filters raw notifier events down to scenario file changes.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isScenarioFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Coalesce: one pending signal is enough, the reload is wholesale.
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Scenario watcher error", "error", err)
		}
	}
}

// debounceLoop waits for a quiet period after the last event, then fires
// the reload callback.
func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.events:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}
