package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/credential"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
	"github.com/nguyentantai21042004/audio-report/internal/store"
	"github.com/nguyentantai21042004/audio-report/pkg/executor"
)

// Options tunes the pipeline.
type Options struct {
	MaxAttempts   int
	PollInterval  time.Duration
	BreakInterval int
	// ExtractAudio reduces video containers to an audio track before upload.
	ExtractAudio bool
	FFmpegPath   string
	TempDir      string
}

type implPipeline struct {
	logger     logger.Logger
	store      store.Store
	creds      credential.Provider
	newBackend BackendFactory
	writer     ReportWriter
	executor   executor.Executor
	opts       Options
	now        func() time.Time
}

// New creates a Pipeline.
func New(
	l logger.Logger,
	st store.Store,
	creds credential.Provider,
	newBackend BackendFactory,
	writer ReportWriter,
	exec executor.Executor,
	opts Options,
) Pipeline {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 15
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}

	return &implPipeline{
		logger:     l,
		store:      st,
		creds:      creds,
		newBackend: newBackend,
		writer:     writer,
		executor:   exec,
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
