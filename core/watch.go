package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/debtengine/debtengine/core/signal"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// watchDebounce is how long a path must stay quiet before it is rescored.
// Editors fire several events per save; only the last one matters.
const watchDebounce = 500 * time.Millisecond

// ExecuteWatch watches the workspace tree and runs the incremental rescore
// path for every source file that changes, until the context is cancelled.
// It serves as the main entry point for the 'watch' command.
func (e *Engine) ExecuteWatch(ctx context.Context, cfg *contract.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchDirs(watcher, cfg.WorkspaceRoot); err != nil {
		return err
	}

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", cfg.WorkspaceRoot)

	// Per-path debounce timers all fire into one channel, so rescoring
	// stays on this goroutine and never races itself.
	dueCh := make(chan string, 64)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			e.handleWatchEvent(watcher, cfg, event, pending, dueCh)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			contract.LogWarn("File watcher error", err)

		case path := <-dueCh:
			delete(pending, path)
			e.rescoreChanged(ctx, cfg, path)
		}
	}
}

// handleWatchEvent filters raw notifier events down to source-file changes
// and (re)arms the per-path debounce timer. New directories are added to the
// watch set as they appear.
func (e *Engine) handleWatchEvent(watcher *fsnotify.Watcher, cfg *contract.Config, event fsnotify.Event, pending map[string]*time.Timer, dueCh chan<- string) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	name := filepath.Base(event.Name)
	if IsSkippedEntry(name) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = addWatchDirs(watcher, event.Name)
			return
		}
	}
	if !signal.IsSourceFile(name) {
		return
	}

	rel := contract.ToRelPath(cfg.WorkspaceRoot, event.Name)
	if contract.ShouldIgnore(rel, cfg.Excludes) {
		return
	}

	path := event.Name
	if timer, ok := pending[path]; ok {
		timer.Reset(watchDebounce)
		return
	}
	pending[path] = time.AfterFunc(watchDebounce, func() {
		dueCh <- path
	})
}

// rescoreChanged runs the single-file rescore path for a debounced change
// and prints a one-line summary. A file that vanished between the event and
// the timer firing is quietly ignored.
func (e *Engine) rescoreChanged(ctx context.Context, cfg *contract.Config, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	score, _, err := e.GetRescoreResults(ctx, cfg, path)
	if err != nil {
		contract.LogWarn("Failed to rescore changed file", err)
		return
	}
	fmt.Printf("%s  %s %.1f (%s)\n",
		time.Now().Format("15:04:05"),
		score.RelativePath,
		score.CompositeScore,
		schema.GetPlainLabel(score.CompositeScore))
}

// addWatchDirs registers root and every non-hidden, non-vendored directory
// below it with the watcher. fsnotify watches are not recursive.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && IsSkippedEntry(d.Name()) {
			return fs.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			contract.LogWarn("Failed to watch directory "+p, err)
		}
		return nil
	})
}
