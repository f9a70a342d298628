package service

import (
	"context"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// SubmitRequest describes a job to create.
type SubmitRequest struct {
	SourcePath    string
	ModelID       string
	OutputOptions []string
	CustomPrompts map[string]string
}

// Service is the API the outer layers (CLI, watcher) use.
type Service interface {
	// SubmitJob validates req, records a queued job and hands it to the
	// scheduler. Only validation errors are returned synchronously.
	SubmitJob(ctx context.Context, req SubmitRequest) (string, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.JobSummary, error)
	// ResumeQueued resubmits jobs left queued by a previous run.
	ResumeQueued(ctx context.Context) (int, error)
}

// Scheduler accepts job ids for execution.
type Scheduler interface {
	Submit(jobID string) error
}
