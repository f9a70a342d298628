package watcher

import "context"

// Watcher monitors a drop directory and hands new media files to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called once per new media file.
type EventHandler func(ctx context.Context, filePath string) error
