// Package fake provides an in-memory backend.Backend for tests.
package fake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/audio-report/internal/backend"
)

// GenerateFunc answers a GenerateContent call.
type GenerateFunc func(ctx context.Context, model, prompt string, in backend.Input) (string, error)

// Backend records every call and answers from scripted values.
type Backend struct {
	mu sync.Mutex

	// UploadErr fails every upload when set.
	UploadErr error
	// UploadState is the state returned by UploadFile. Defaults to processing.
	UploadState backend.FileState
	// States are returned by successive GetFile calls; the last one repeats.
	States []backend.FileState
	// GetErr fails every GetFile call when set.
	GetErr error
	// DeleteErr fails every DeleteFile call when set.
	DeleteErr error
	// Generate answers GenerateContent. Defaults to echoing the prompt.
	Generate GenerateFunc

	uploads  int
	gets     int
	deletes  map[string]int
	prompts  []string
	inputs   []backend.Input
	nextFile int
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) UploadFile(_ context.Context, path, mimeType string) (*backend.RemoteFile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.uploads++
	if b.UploadErr != nil {
		return nil, b.UploadErr
	}
	b.nextFile++
	state := b.UploadState
	if state == "" {
		state = backend.FileStateProcessing
	}
	name := fmt.Sprintf("files/%d", b.nextFile)
	return &backend.RemoteFile{
		Name:     name,
		URI:      "https://backend.test/" + name,
		MIMEType: mimeType,
		State:    state,
	}, nil
}

func (b *Backend) GetFile(_ context.Context, name string) (*backend.RemoteFile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gets++
	if b.GetErr != nil {
		return nil, b.GetErr
	}
	if len(b.States) == 0 {
		return nil, errors.New("no scripted state")
	}
	idx := b.gets - 1
	if idx >= len(b.States) {
		idx = len(b.States) - 1
	}
	rf := &backend.RemoteFile{Name: name, URI: "https://backend.test/" + name, State: b.States[idx]}
	if rf.State == backend.FileStateFailed {
		rf.Reason = "scripted failure"
	}
	return rf, nil
}

func (b *Backend) DeleteFile(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.deletes == nil {
		b.deletes = make(map[string]int)
	}
	b.deletes[name]++
	return b.DeleteErr
}

func (b *Backend) GenerateContent(ctx context.Context, model, prompt string, in backend.Input) (string, error) {
	b.mu.Lock()
	b.prompts = append(b.prompts, prompt)
	b.inputs = append(b.inputs, in)
	gen := b.Generate
	b.mu.Unlock()

	if gen == nil {
		return prompt, nil
	}
	return gen(ctx, model, prompt, in)
}

// Uploads returns the number of UploadFile calls.
func (b *Backend) Uploads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads
}

// Gets returns the number of GetFile calls.
func (b *Backend) Gets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gets
}

// Deletes returns how many times name was deleted.
func (b *Backend) Deletes(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deletes[name]
}

// TotalDeletes returns the number of DeleteFile calls.
func (b *Backend) TotalDeletes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.deletes {
		total += n
	}
	return total
}

// Prompts returns every prompt sent, in order.
func (b *Backend) Prompts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.prompts...)
}

// Inputs returns every generate input, in order.
func (b *Backend) Inputs() []backend.Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backend.Input(nil), b.inputs...)
}
