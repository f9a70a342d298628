package media

import (
	"github.com/nguyentantai21042004/audio-report/internal/backend"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

type implManager struct {
	backend backend.Backend
	logger  logger.Logger
}

// New creates a Manager on top of b.
func New(b backend.Backend, l logger.Logger) Manager {
	return &implManager{
		backend: b,
		logger:  l,
	}
}
