package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/media"
	"github.com/nguyentantai21042004/audio-report/internal/metrics"
)

// prepare returns the path to upload. Video containers are reduced to a
// 16kHz mono WAV track when extraction is enabled.
func (p *implPipeline) prepare(ctx context.Context, run *jobRun) (string, error) {
	src := run.job.SourcePath
	info, err := os.Stat(src)
	if err != nil {
		return "", domain.NewStageError(domain.StagePrepare, domain.ErrUpload, "source unavailable", err)
	}
	if info.IsDir() {
		return "", domain.NewStageError(domain.StagePrepare, domain.ErrUpload, fmt.Sprintf("source %s is a directory", src), nil)
	}

	if !p.opts.ExtractAudio || p.executor == nil || !media.IsVideo(src) {
		return src, nil
	}

	dir := p.opts.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", domain.NewStageError(domain.StagePrepare, domain.ErrUpload, "create temp dir", err)
	}

	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	audioPath := filepath.Join(dir, fmt.Sprintf("%s_%s.wav", base, shortID(run.job.ID)))

	args := []string{
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	ffmpeg, err := p.executor.LookPath(p.opts.FFmpegPath)
	if err != nil {
		return "", domain.NewStageError(domain.StagePrepare, domain.ErrUpload, "ffmpeg unavailable", err)
	}

	p.logger.Info(ctx, "%s Extracting audio: %s", run.prefix, src)
	start := time.Now()
	_, err = p.executor.Execute(ctx, ffmpeg, args...)
	metrics.ObserveStep(domain.StagePrepare, start)
	run.tempFile = audioPath
	if err != nil {
		return "", domain.NewStageError(domain.StagePrepare, domain.ErrUpload, "ffmpeg extract audio", err)
	}

	p.logger.Info(ctx, "%s Audio extracted: %s", run.prefix, audioPath)
	return audioPath, nil
}

func (p *implPipeline) removeTemp(ctx context.Context, run *jobRun) {
	if run.tempFile == "" {
		return
	}
	if err := os.Remove(run.tempFile); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "%s Failed to remove %s: %v", run.prefix, run.tempFile, err)
	}
}
