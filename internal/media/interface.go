package media

import (
	"context"
	"time"
)

// Manager owns the lifecycle of media uploaded to the backend.
type Manager interface {
	// Upload sends the local file at path to the backend and returns a handle
	// that must later be passed to Release.
	Upload(ctx context.Context, path string) (*Handle, error)
	// AwaitReady polls the backend until the handle is usable, the backend
	// reports failure, or maxAttempts checks have been made.
	AwaitReady(ctx context.Context, h *Handle, maxAttempts int, interval time.Duration) (Readiness, error)
	// Release deletes the remote file. Safe to call more than once.
	Release(ctx context.Context, h *Handle)
}
