package executor

import "context"

// Executor runs external programs such as ffmpeg.
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath resolves name against PATH.
	LookPath(name string) (string, error)
}
