package backend

import "context"

// FileState is the processing state the backend reports for an uploaded file.
type FileState string

const (
	FileStateUnspecified FileState = "unspecified"
	FileStateProcessing  FileState = "processing"
	FileStateActive      FileState = "active"
	FileStateFailed      FileState = "failed"
)

// RemoteFile describes a file held by the backend.
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    FileState
	// Reason is the backend's explanation when State is failed.
	Reason string
}

// Input is the non-prompt part of a generate request: either an uploaded file
// or plain text.
type Input struct {
	FileURI  string
	MIMEType string
	Text     string
}

// Backend is the generative-AI capability the pipeline consumes.
type Backend interface {
	UploadFile(ctx context.Context, path, mimeType string) (*RemoteFile, error)
	GetFile(ctx context.Context, name string) (*RemoteFile, error)
	DeleteFile(ctx context.Context, name string) error
	GenerateContent(ctx context.Context, model, prompt string, in Input) (string, error)
}
