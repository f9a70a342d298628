package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/media"
	"github.com/nguyentantai21042004/audio-report/internal/metrics"
	"github.com/nguyentantai21042004/audio-report/internal/render"
	"github.com/nguyentantai21042004/audio-report/internal/store"
)

// errNotOwner means another runner already moved the job out of queued.
var errNotOwner = errors.New("job no longer queued")

// jobRun is the per-job state the deferred cleanup needs.
type jobRun struct {
	job      *domain.Job
	prefix   string
	media    media.Manager
	handle   *media.Handle
	tempFile string
}

func (p *implPipeline) Run(ctx context.Context, jobID string) {
	metrics.IncJobsInFlight()
	defer metrics.DecJobsInFlight()

	prefix := fmt.Sprintf("[job %s]", jobID)
	job, err := p.store.Get(ctx, jobID)
	if err != nil {
		p.logger.Error(ctx, "%s Cannot load job: %v", prefix, err)
		return
	}
	if job.Status != domain.JobStatusQueued {
		p.logger.Warn(ctx, "%s Job is %s, not queued; skipping", prefix, job.Status)
		return
	}

	run := &jobRun{job: job, prefix: prefix}
	defer p.cleanup(ctx, run)
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error(ctx, "%s Panic: %v\n%s", prefix, rec, debug.Stack())
			p.fail(ctx, run, domain.NewStageError("", domain.ErrInternal, fmt.Sprint(rec), nil))
		}
	}()

	if err := p.execute(ctx, run); err != nil {
		if errors.Is(err, errNotOwner) {
			p.logger.Warn(ctx, "%s %v", prefix, err)
			return
		}
		p.fail(ctx, run, err)
	}
}

func (p *implPipeline) execute(ctx context.Context, run *jobRun) error {
	job := run.job

	cred, err := p.creds.Credential(ctx)
	if err != nil {
		return err
	}
	client, err := p.newBackend(ctx, cred)
	if err != nil {
		return domain.NewStageError(domain.StageCredential, domain.ErrCredential, "configure backend", err)
	}
	run.media = media.New(client, p.logger)

	start := p.now()
	if err := p.store.UpdateStatus(ctx, job.ID, domain.JobStatusProcessing, store.StatusUpdate{StartTime: &start}); err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			return errNotOwner
		}
		return domain.NewStageError(domain.StagePersist, domain.ErrInternal, "mark processing", err)
	}
	job.Status = domain.JobStatusProcessing
	p.logger.Info(ctx, "%s Processing %s with %s (mode %s)", run.prefix, job.SourcePath, job.ModelID, domain.ModeFor(job.OutputOptions))

	source, err := p.prepare(ctx, run)
	if err != nil {
		return err
	}

	stepStart := time.Now()
	run.handle, err = run.media.Upload(ctx, source)
	metrics.ObserveStep(domain.StageUpload, stepStart)
	if err != nil {
		return err
	}

	stepStart = time.Now()
	readiness, err := run.media.AwaitReady(ctx, run.handle, p.opts.MaxAttempts, p.opts.PollInterval)
	metrics.ObserveStep(domain.StageReadiness, stepStart)
	metrics.IncreaseReadinessOutcomeMetric(readiness.String())
	if err != nil {
		return domain.NewStageError(domain.StageReadiness, domain.ErrReadinessTimeout, "polling interrupted", err)
	}
	switch readiness {
	case media.TimedOut:
		return domain.NewStageError(domain.StageReadiness, domain.ErrReadinessTimeout,
			fmt.Sprintf("media %s not ready after %d checks %s apart", run.handle.ResourceID, p.opts.MaxAttempts, p.opts.PollInterval), nil)
	case media.RemoteFailed:
		return domain.NewStageError(domain.StageReadiness, domain.ErrRemoteFailed,
			fmt.Sprintf("media %s: %s", run.handle.ResourceID, run.handle.FailureReason), nil)
	}

	stepStart = time.Now()
	results := p.generate(ctx, run, client)
	metrics.ObserveStep(domain.StageInference, stepStart)

	report := p.buildReport(job, results)

	if err := p.store.UpdateStatus(ctx, job.ID, domain.JobStatusGeneratingReport, store.StatusUpdate{}); err != nil {
		return domain.NewStageError(domain.StagePersist, domain.ErrInternal, "mark generating report", err)
	}
	job.Status = domain.JobStatusGeneratingReport

	stepStart = time.Now()
	baseName := render.BaseName(job.SourceName, job.ModelID, report.GeneratedAt) + "_" + shortID(job.ID)
	out, err := p.writer.Write(ctx, report, baseName, domain.FormatsFor(job.OutputOptions))
	metrics.ObserveStep(domain.StageRender, stepStart)
	if err != nil {
		return err
	}

	done := p.now()
	err = p.store.UpdateStatus(ctx, job.ID, domain.JobStatusCompleted, store.StatusUpdate{
		CompletionTime: &done,
		ResultPreview:  out.Preview,
		DownloadLinks:  out.Links,
	})
	if err != nil {
		return domain.NewStageError(domain.StagePersist, domain.ErrInternal, "mark completed", err)
	}
	job.Status = domain.JobStatusCompleted

	metrics.IncreaseJobsTotalMetric(string(domain.JobStatusCompleted))
	p.logger.Info(ctx, "%s Completed with %d artifact(s)", run.prefix, len(out.Links))
	return nil
}

// fail records err on the job. Errors that are not already classified are
// reported as internal errors.
func (p *implPipeline) fail(ctx context.Context, run *jobRun, err error) {
	var stageErr *domain.StageError
	if !errors.As(err, &stageErr) {
		err = domain.NewStageError("", domain.ErrInternal, "unexpected failure", err)
	}

	done := p.now()
	p.logger.Error(ctx, "%s Failed: %v", run.prefix, err)
	updateErr := p.store.UpdateStatus(ctx, run.job.ID, domain.JobStatusFailed, store.StatusUpdate{
		CompletionTime: &done,
		ErrorMessage:   err.Error(),
	})
	if updateErr != nil {
		p.logger.Error(ctx, "%s Cannot record failure: %v", run.prefix, updateErr)
		return
	}
	run.job.Status = domain.JobStatusFailed
	metrics.IncreaseJobsTotalMetric(string(domain.JobStatusFailed))
}

// cleanup releases the remote media and removes temporary files. It runs
// exactly once per job regardless of outcome.
func (p *implPipeline) cleanup(ctx context.Context, run *jobRun) {
	if run.media != nil && run.handle != nil {
		run.media.Release(ctx, run.handle)
	}
	p.removeTemp(ctx, run)
}

func (p *implPipeline) buildReport(job *domain.Job, results Results) *render.Report {
	mode := domain.ModeFor(job.OutputOptions)
	summary := results.get(slotSummary).Summary(slotSummary)

	report := &render.Report{
		Title:       fmt.Sprintf("AI report for '%s'", job.SourceName),
		SourceName:  job.SourceName,
		ModelID:     job.ModelID,
		Summary:     &summary,
		GeneratedAt: p.now(),
	}

	switch mode {
	case domain.ModeSummaryTranscript:
		transcript := results.get(slotTranscript).Transcript(slotTranscript, p.opts.BreakInterval)
		report.Transcript = &transcript
	case domain.ModeBilingual:
		transcript := results.get(slotTranscript).Transcript(slotTranscript, p.opts.BreakInterval)
		transcript.BilingualPrepend = bilingualTranscriptLabel
		report.Transcript = &transcript

		english := results.get(slotEnglishSummary).Summary(slotEnglishSummary)
		summary.BilingualAppend = &domain.AppendedSummary{
			Title:          englishSummaryLabel,
			IntroParagraph: english.IntroParagraph,
			Items:          english.Items,
		}
	}
	return report
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
