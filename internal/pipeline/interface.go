package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/audio-report/internal/backend"
	"github.com/nguyentantai21042004/audio-report/internal/credential"
	"github.com/nguyentantai21042004/audio-report/internal/render"
)

// Pipeline drives one job from queued to a terminal status.
type Pipeline interface {
	// Run never returns an error: every outcome is recorded on the job.
	Run(ctx context.Context, jobID string)
}

// BackendFactory builds a backend client for one job from its credential.
type BackendFactory func(ctx context.Context, cred credential.Credential) (backend.Backend, error)

// ReportWriter renders a report and returns the preview and links.
type ReportWriter interface {
	Write(ctx context.Context, r *render.Report, baseName string, formats []string) (*render.Output, error)
}
