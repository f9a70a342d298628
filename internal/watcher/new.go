package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

// Options tunes a Watcher.
type Options struct {
	// AcceptVideo also picks up video containers.
	AcceptVideo bool
	// Settle is how long to wait after a create event before handing the file
	// over, so writers can finish.
	Settle time.Duration
}

// New creates a Watcher on inputDir.
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.Settle < 0 {
		opts.Settle = 0
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		opts:     opts,
	}, nil
}
