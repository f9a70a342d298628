package pipeline

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/audio-report/internal/backend"
	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// generate runs the inference steps for the job's mode. The transcript comes
// first because every summary is generated from it.
func (p *implPipeline) generate(ctx context.Context, run *jobRun, client backend.Backend) Results {
	job := run.job
	mode := domain.ModeFor(job.OutputOptions)
	results := Results{}

	tPrompt := transcriptPrompt
	if mode == domain.ModeBilingual {
		tPrompt = originalTranscriptPrompt
	}
	if custom, ok := job.Prompt(domain.PromptTranscript); ok {
		tPrompt = custom
	}
	transcript := p.infer(ctx, run, client, slotTranscript, tPrompt, backend.Input{
		FileURI:  run.handle.URI,
		MIMEType: run.handle.MIMEType,
	})
	results[slotTranscript] = transcript

	sPrompt := summaryPrompt
	if custom, ok := job.Prompt(domain.PromptSummary); ok {
		sPrompt = custom
	}
	results[slotSummary] = p.inferFrom(ctx, run, client, slotSummary, sPrompt, transcript)

	if mode == domain.ModeBilingual {
		results[slotEnglishSummary] = p.inferFrom(ctx, run, client, slotEnglishSummary, englishSummaryPrompt, transcript)
	}

	return results
}

// inferFrom runs a step whose input is the text of source, skipping it when
// source is unusable.
func (p *implPipeline) inferFrom(ctx context.Context, run *jobRun, client backend.Backend, slot, prompt string, source Result) Result {
	if !source.IsOK() {
		p.logger.Warn(ctx, "%s Skipping %s: %s unavailable", run.prefix, slot, slotTranscript)
		return Skipped(slotTranscript + " unavailable")
	}
	if strings.TrimSpace(source.Text()) == "" {
		p.logger.Warn(ctx, "%s Skipping %s: %s was empty", run.prefix, slot, slotTranscript)
		return Skipped(slotTranscript + " was empty")
	}
	return p.infer(ctx, run, client, slot, prompt, backend.Input{Text: source.Text()})
}

func (p *implPipeline) infer(ctx context.Context, run *jobRun, client backend.Backend, slot, prompt string, in backend.Input) Result {
	p.logger.Info(ctx, "%s Generating %s", run.prefix, slot)

	text, err := client.GenerateContent(ctx, run.job.ModelID, prompt, in)
	if err != nil {
		stageErr := domain.NewStageError(domain.StageInference, domain.ErrRemoteInference, err.Error(), nil)
		p.logger.Error(ctx, "%s Failed to generate %s: %v", run.prefix, slot, err)
		return Failed(stageErr.Error())
	}

	p.logger.Info(ctx, "%s Received %s (%d chars)", run.prefix, slot, len(text))
	return OK(text)
}
