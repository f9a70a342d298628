package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

func (s *implService) SubmitJob(ctx context.Context, req SubmitRequest) (string, error) {
	job, err := s.validate(req)
	if err != nil {
		return "", err
	}

	job.ID = s.newID()
	job.Status = domain.JobStatusQueued
	job.SubmitTime = time.Now().UTC()

	if err := s.store.Create(ctx, job); err != nil {
		return "", fmt.Errorf("record job: %w", err)
	}
	s.logger.Info(ctx, "[job %s] Queued %s (%s, options %v)", job.ID, job.SourceName, job.ModelID, job.OutputOptions)

	if err := s.scheduler.Submit(job.ID); err != nil {
		s.logger.Warn(ctx, "[job %s] Not scheduled now, will resume on next start: %v", job.ID, err)
	}
	return job.ID, nil
}

func (s *implService) validate(req SubmitRequest) (*domain.Job, error) {
	path := strings.TrimSpace(req.SourcePath)
	if path == "" {
		return nil, domain.ValidationError("source path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.ValidationError("source %s does not exist", path)
	}
	if info.IsDir() {
		return nil, domain.ValidationError("source %s is a directory", path)
	}

	options := make([]string, 0, len(req.OutputOptions))
	for _, o := range req.OutputOptions {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	if len(options) == 0 {
		return nil, domain.ValidationError("at least one output option is required")
	}

	prompts := map[string]string{}
	for role, prompt := range req.CustomPrompts {
		if role != domain.PromptSummary && role != domain.PromptTranscript {
			return nil, domain.ValidationError("unknown prompt role %q", role)
		}
		if strings.TrimSpace(prompt) != "" {
			prompts[role] = prompt
		}
	}
	if len(prompts) == 0 {
		prompts = nil
	}

	model := strings.TrimSpace(req.ModelID)
	if model == "" {
		model = s.defaultModel
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &domain.Job{
		SourcePath:    abs,
		SourceName:    filepath.Base(abs),
		ModelID:       model,
		OutputOptions: options,
		CustomPrompts: prompts,
	}, nil
}

func (s *implService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.store.Get(ctx, id)
}

func (s *implService) ListJobs(ctx context.Context) ([]domain.JobSummary, error) {
	return s.store.List(ctx)
}

func (s *implService) ResumeQueued(ctx context.Context) (int, error) {
	jobs, err := s.store.ListByStatus(ctx, domain.JobStatusQueued)
	if err != nil {
		return 0, fmt.Errorf("list queued jobs: %w", err)
	}

	resumed := 0
	for _, job := range jobs {
		if err := s.scheduler.Submit(job.ID); err != nil {
			return resumed, fmt.Errorf("resubmit %s: %w", job.ID, err)
		}
		resumed++
	}
	if resumed > 0 {
		s.logger.Info(ctx, "Resumed %d queued job(s)", resumed)
	}
	return resumed, nil
}
