package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every failure recorded on a job wraps exactly one of them.
var (
	ErrValidation       = errors.New("validation error")
	ErrCredential       = errors.New("credential error")
	ErrUpload           = errors.New("upload error")
	ErrReadinessTimeout = errors.New("readiness timeout")
	ErrRemoteFailed     = errors.New("remote processing failed")
	ErrRemoteInference  = errors.New("remote inference error")
	ErrRender           = errors.New("render error")
	ErrInternal         = errors.New("internal error")
)

// Pipeline stages used in StageError.
const (
	StagePrepare    = "prepare"
	StageUpload     = "upload"
	StageReadiness  = "readiness"
	StageInference  = "inference"
	StageRender     = "render"
	StagePersist    = "persist"
	StageCredential = "credential"
)

// StageError is a stage-aware error whose class is the wrapped sentinel.
type StageError struct {
	Stage   string
	Class   error
	Message string
	Err     error
}

// NewStageError builds a StageError of the given class.
func NewStageError(stage string, class error, message string, err error) *StageError {
	return &StageError{Stage: stage, Class: class, Message: message, Err: err}
}

// Error formats as "<class>: <message>[: <cause>]", which is what lands in
// Job.ErrorMessage.
func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Class != nil {
		msg = fmt.Sprintf("%s: %s", e.Class, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the error class so errors.Is(err, ErrUpload) works.
func (e *StageError) Is(target error) bool {
	return e != nil && e.Class != nil && target == e.Class
}

// Unwrap exposes the underlying cause.
func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError returns an ErrValidation-classed error.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
