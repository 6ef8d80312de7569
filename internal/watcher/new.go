package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/legal-os/internal/logger"
)

const (
	defaultSettle = 500 * time.Millisecond
	queueSize     = 256
)

// New creates a Watcher over inboxDir. Files are passed to handler one at a
// time, in arrival order, settle after they appear.
func New(inboxDir string, handler EventHandler, log logger.Logger, settle time.Duration) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settle < 0 {
		settle = defaultSettle
	}

	return &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   settle,
		queue:    make(chan string, queueSize),
	}, nil
}
