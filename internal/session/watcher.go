// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taibuivan/codejourney/internal/platform/constants"
)

// Watcher refreshes a [Manager] when its token file is changed by another
// process, such as a second terminal logging in or out.
type Watcher struct {
	manager  *Manager
	store    *FileTokenStore
	logger   *slog.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool
}

// NewWatcher prepares a watcher. Nothing is watched until [Watcher.Start].
func NewWatcher(manager *Manager, store *FileTokenStore, logger *slog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("session: watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		manager:  manager,
		store:    store,
		logger:   logger.With(slog.String("component", "token_watcher")),
		debounce: constants.WatchDebounce,
		watcher:  watcher,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the directory holding the token file. The directory is
// watched rather than the file because writes replace the file.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	dir := filepath.Dir(w.store.Path())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create %s: %w", dir, err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("session: watch %s: %w", dir, err)
	}

	w.running = true
	go w.run(ctx)

	w.logger.DebugContext(ctx, "token_watcher_started", slog.String("dir", dir))
	return nil
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	target := filepath.Clean(w.store.Path())

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !relevant(event.Op) {
				continue
			}
			// Debounce bursts such as temp-file write then rename.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WarnContext(ctx, "token_watcher_error", slog.Any("error", err))

		case <-pending:
			pending = nil
			w.sync(ctx)
		}
	}
}

// sync refreshes the manager unless the file already matches its state,
// which is the case right after this process wrote it.
func (w *Watcher) sync(ctx context.Context) {
	token, err := w.store.Get(ctx)
	if err != nil {
		w.logger.WarnContext(ctx, "token_watcher_read_failed", slog.Any("error", err))
	}
	if err == nil && token == w.manager.Token() && w.manager.IsInitialized() {
		return
	}

	w.logger.InfoContext(ctx, "token_changed_externally")
	if err := w.manager.Refresh(ctx); err != nil {
		w.logger.InfoContext(ctx, "token_refresh_failed", slog.Any("error", err))
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
