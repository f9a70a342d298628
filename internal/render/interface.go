// Package render writes a parsed report out as downloadable artifacts.
package render

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// Report is the input shared by every renderer. A nil section is left out.
type Report struct {
	Title       string
	SourceName  string
	ModelID     string
	Summary     *domain.StructuredSummary
	Transcript  *domain.StructuredTranscript
	GeneratedAt time.Time
}

// Renderer writes one artifact format.
type Renderer interface {
	Format() string
	Render(r *Report, path string) error
}

// Mirror copies a written artifact to secondary storage.
type Mirror interface {
	Put(ctx context.Context, localPath, objectName, contentType string) error
}

// Output is what a completed job records.
type Output struct {
	Preview string
	Links   map[string]string
}
