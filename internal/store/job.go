package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

type jobStore struct {
	db *gorm.DB
}

// Make sure we conform to Store interface
var _ Store = (*jobStore)(nil)

// NewStore wraps an initialized database.
func NewStore(db *gorm.DB) Store {
	return &jobStore{db: db}
}

func (s *jobStore) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		return fmt.Errorf("create job: empty id")
	}
	if job.Status == "" {
		job.Status = domain.JobStatusQueued
	}
	if job.SubmitTime.IsZero() {
		job.SubmitTime = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// UpdateStatus moves a job into status in a single conditional UPDATE. The row
// only changes if its current status is a legal predecessor, so concurrent
// writers can never move a job backwards.
func (s *jobStore) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, upd StatusUpdate) error {
	from := status.Predecessors()
	if len(from) == 0 {
		return fmt.Errorf("%w: nothing transitions into %q", ErrInvalidTransition, status)
	}
	allowed := make([]string, len(from))
	for i, st := range from {
		allowed[i] = string(st)
	}

	values := map[string]interface{}{"status": string(status)}
	if upd.StartTime != nil {
		values["start_time"] = gorm.Expr("COALESCE(start_time, ?)", upd.StartTime.UTC())
	}
	if upd.CompletionTime != nil {
		values["completion_time"] = gorm.Expr("COALESCE(completion_time, ?)", upd.CompletionTime.UTC())
	}
	if upd.ErrorMessage != "" {
		values["error_message"] = upd.ErrorMessage
	}
	if upd.ResultPreview != "" {
		values["result_preview"] = upd.ResultPreview
	}
	if upd.DownloadLinks != nil {
		links, err := json.Marshal(upd.DownloadLinks)
		if err != nil {
			return fmt.Errorf("encode download links: %w", err)
		}
		values["download_links"] = string(links)
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ? AND status IN ?", id, allowed).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("updating job status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
}

func (s *jobStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	result := s.db.WithContext(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying job: %w", result.Error)
	}
	return &job, nil
}

func (s *jobStore) List(ctx context.Context) ([]domain.JobSummary, error) {
	var jobs []domain.Job
	result := s.db.WithContext(ctx).
		Omit("result_preview").
		Order("submit_time DESC").
		Find(&jobs)
	if result.Error != nil {
		return nil, fmt.Errorf("listing jobs: %w", result.Error)
	}

	summaries := make([]domain.JobSummary, 0, len(jobs))
	for i := range jobs {
		summaries = append(summaries, jobs[i].Summary())
	}
	return summaries, nil
}

// ListByStatus returns jobs in status, oldest submission first.
func (s *jobStore) ListByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	var jobs []domain.Job
	result := s.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("submit_time ASC").
		Find(&jobs)
	if result.Error != nil {
		return nil, fmt.Errorf("listing %s jobs: %w", status, result.Error)
	}
	return jobs, nil
}

func (s *jobStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
