package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/legal-os/internal/domain"
	"github.com/nguyentantai21042004/legal-os/internal/logger"
)

type implWatcher struct {
	inboxDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	settle   time.Duration
	queue    chan string
	wg       sync.WaitGroup
}

// Start queues files already in the inbox, then every new evidence file.
// A single worker drains the queue so files reach the handler sequentially.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)

	w.wg.Add(1)
	go w.work(ctx)
	defer func() {
		close(w.queue)
		w.logger.Info(ctx, "Waiting for the current file to finish...")
		w.wg.Wait()
		w.logger.Info(ctx, "Inbox watcher stopped")
	}()

	existing, err := w.pending()
	if err != nil {
		return fmt.Errorf("scan inbox: %w", err)
	}
	for _, path := range existing {
		if !w.enqueue(ctx, path) {
			return ctx.Err()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events; a rename into the inbox is one too
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isEvidenceFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New evidence detected: %s", filepath.Base(event.Name))
			if !w.enqueue(ctx, event.Name) {
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) enqueue(ctx context.Context, path string) bool {
	select {
	case w.queue <- path:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *implWatcher) work(ctx context.Context) {
	defer w.wg.Done()

	for path := range w.queue {
		if ctx.Err() != nil {
			continue
		}

		// Small delay to let the writer finish
		select {
		case <-time.After(w.settle):
		case <-ctx.Done():
			continue
		}

		if _, err := os.Stat(path); err != nil {
			w.logger.Debug(ctx, "Skipping vanished file %s", path)
			continue
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filepath.Base(path), err)
		}
	}
}

// pending lists evidence files already in the inbox, oldest first.
func (w *implWatcher) pending() ([]string, error) {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		return nil, err
	}

	type file struct {
		path string
		mod  time.Time
	}
	var files []file
	for _, e := range entries {
		if e.IsDir() || !isEvidenceFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, file{filepath.Join(w.inboxDir, e.Name()), info.ModTime()})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].mod.Equal(files[j].mod) {
			return files[i].path < files[j].path
		}
		return files[i].mod.Before(files[j].mod)
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

// isEvidenceFile accepts recordings and documents, skipping hidden and
// partial downloads.
func isEvidenceFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return domain.KindOf(name) != domain.KindUnknown
}
