package service

import (
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/audio-report/internal/logger"
	"github.com/nguyentantai21042004/audio-report/internal/store"
)

type implService struct {
	logger       logger.Logger
	store        store.Store
	scheduler    Scheduler
	defaultModel string
	newID        func() string
}

// New creates a Service.
func New(l logger.Logger, st store.Store, scheduler Scheduler, defaultModel string) Service {
	return &implService{
		logger:       l,
		store:        st,
		scheduler:    scheduler,
		defaultModel: defaultModel,
		newID:        uuid.NewString,
	}
}
