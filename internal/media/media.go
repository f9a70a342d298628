package media

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/backend"
	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

func (m *implManager) Upload(ctx context.Context, path string) (*Handle, error) {
	mimeType := DetectMIMEType(path)
	h := &Handle{MIMEType: mimeType, State: StateUploading}

	m.logger.Info(ctx, "Uploading %s (%s)", path, mimeType)
	file, err := m.backend.UploadFile(ctx, path, mimeType)
	if err != nil {
		return nil, domain.NewStageError(domain.StageUpload, domain.ErrUpload, "failed to upload media", err)
	}

	h.ResourceID = file.Name
	h.URI = file.URI
	if file.MIMEType != "" {
		h.MIMEType = file.MIMEType
	}
	h.apply(file)

	m.logger.Info(ctx, "Uploaded %s as %s (state %s)", path, h.ResourceID, h.State)
	return h, nil
}

func (m *implManager) AwaitReady(ctx context.Context, h *Handle, maxAttempts int, interval time.Duration) (Readiness, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		switch h.State {
		case StateActive:
			m.logger.Info(ctx, "Media %s is active after %d check(s)", h.ResourceID, attempt)
			return Ready, nil
		case StateFailed:
			m.logger.Warn(ctx, "Media %s failed remotely: %s", h.ResourceID, h.FailureReason)
			return RemoteFailed, nil
		}

		if attempt == maxAttempts {
			break
		}

		m.logger.Debug(ctx, "Media %s still %s, waiting %s (%d/%d)", h.ResourceID, h.State, interval, attempt, maxAttempts)
		select {
		case <-ctx.Done():
			return TimedOut, ctx.Err()
		case <-time.After(interval):
		}

		file, err := m.backend.GetFile(ctx, h.ResourceID)
		if err != nil {
			m.logger.Warn(ctx, "Failed to fetch state of %s: %v", h.ResourceID, err)
			continue
		}
		h.apply(file)
	}

	m.logger.Warn(ctx, "Media %s not ready after %d checks", h.ResourceID, maxAttempts)
	return TimedOut, nil
}

func (m *implManager) Release(ctx context.Context, h *Handle) {
	if h == nil || h.ResourceID == "" {
		return
	}
	if !h.released.CompareAndSwap(false, true) {
		return
	}

	if err := m.backend.DeleteFile(ctx, h.ResourceID); err != nil {
		m.logger.Warn(ctx, "Failed to delete remote media %s: %v", h.ResourceID, err)
		return
	}
	m.logger.Info(ctx, "Deleted remote media %s", h.ResourceID)
}

// apply copies the backend's view of the file onto the handle. An unspecified
// state is treated as still processing.
func (h *Handle) apply(f *backend.RemoteFile) {
	switch f.State {
	case backend.FileStateActive:
		h.State = StateActive
	case backend.FileStateFailed:
		h.State = StateFailed
		h.FailureReason = f.Reason
		if h.FailureReason == "" {
			h.FailureReason = fmt.Sprintf("file %s reported failed state", f.Name)
		}
	default:
		h.State = StateProcessing
	}
}
