package store

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// StatusUpdate carries the fields written together with a status change.
// Zero values are left untouched; timestamps are only written if still unset.
type StatusUpdate struct {
	StartTime      *time.Time
	CompletionTime *time.Time
	ErrorMessage   string
	ResultPreview  string
	DownloadLinks  map[string]string
}

// Store is the persistent record of jobs and the single source of truth for
// status queries.
type Store interface {
	Create(ctx context.Context, job *domain.Job) error
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, upd StatusUpdate) error
	Get(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]domain.JobSummary, error)
	ListByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error)
	Close() error
}
