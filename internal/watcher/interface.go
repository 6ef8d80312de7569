package watcher

import "context"

// Watcher defines the interface for inbox monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one file dropped into the inbox
type EventHandler func(ctx context.Context, filePath string) error
