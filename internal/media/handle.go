package media

import (
	"mime"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// State is the lifecycle state of a remote media handle.
type State string

const (
	StateUploading  State = "uploading"
	StateProcessing State = "processing"
	StateActive     State = "active"
	StateFailed     State = "failed"
)

// Handle references media held by the backend for one job.
type Handle struct {
	ResourceID string
	URI        string
	MIMEType   string
	State      State
	// FailureReason is set when the backend marks the media failed.
	FailureReason string

	released atomic.Bool
}

// Released reports whether Release already ran for this handle.
func (h *Handle) Released() bool {
	return h.released.Load()
}

// Readiness is the outcome of AwaitReady.
type Readiness int

const (
	Ready Readiness = iota
	TimedOut
	RemoteFailed
)

func (r Readiness) String() string {
	switch r {
	case Ready:
		return "ready"
	case TimedOut:
		return "timed_out"
	case RemoteFailed:
		return "remote_failed"
	default:
		return "unknown"
	}
}

var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".opus": "audio/opus",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
}

var videoExts = map[string]bool{
	".mp4": true,
	".mov": true,
	".mkv": true,
	".avi": true,
	".m4v": true,
	".flv": true,
}

// IsVideo reports whether path looks like a video container.
func IsVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// IsAudio reports whether path has a known audio extension.
func IsAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	t, ok := audioTypes[ext]
	return ok && strings.HasPrefix(t, "audio/")
}

// DetectMIMEType guesses the MIME type of path from its extension, falling
// back to audio/mpeg.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := audioTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return "audio/mpeg"
}
