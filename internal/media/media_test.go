package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-report/internal/backend"
	"github.com/nguyentantai21042004/audio-report/internal/backend/fake"
	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

const tick = time.Millisecond

func TestUploadFailureIsClassified(t *testing.T) {
	fb := &fake.Backend{UploadErr: errors.New("network down")}
	m := New(fb, logger.NewNop())

	h, err := m.Upload(context.Background(), "/tmp/a.mp3")
	assert.Nil(t, h)
	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.Contains(t, err.Error(), "network down")
}

func TestAwaitReady(t *testing.T) {
	tests := []struct {
		name        string
		uploadState backend.FileState
		states      []backend.FileState
		getErr      error
		maxAttempts int
		want        Readiness
		wantGets    int
	}{
		{
			name:        "active on upload",
			uploadState: backend.FileStateActive,
			maxAttempts: 5,
			want:        Ready,
			wantGets:    0,
		},
		{
			name:        "becomes active",
			states:      []backend.FileState{backend.FileStateProcessing, backend.FileStateActive},
			maxAttempts: 5,
			want:        Ready,
			wantGets:    2,
		},
		{
			name:        "unspecified keeps polling",
			states:      []backend.FileState{backend.FileStateUnspecified, backend.FileStateActive},
			maxAttempts: 5,
			want:        Ready,
			wantGets:    2,
		},
		{
			name:        "remote failure",
			states:      []backend.FileState{backend.FileStateFailed},
			maxAttempts: 5,
			want:        RemoteFailed,
			wantGets:    1,
		},
		{
			name:        "never ready",
			states:      []backend.FileState{backend.FileStateProcessing},
			maxAttempts: 3,
			want:        TimedOut,
			wantGets:    2,
		},
		{
			name:        "fetch errors count as attempts",
			getErr:      errors.New("503"),
			maxAttempts: 4,
			want:        TimedOut,
			wantGets:    3,
		},
		{
			name:        "single attempt",
			maxAttempts: 1,
			want:        TimedOut,
			wantGets:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fake.Backend{UploadState: tt.uploadState, States: tt.states, GetErr: tt.getErr}
			m := New(fb, logger.NewNop())
			ctx := context.Background()

			h, err := m.Upload(ctx, "/tmp/a.mp3")
			require.NoError(t, err)

			got, err := m.AwaitReady(ctx, h, tt.maxAttempts, tick)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantGets, fb.Gets())
		})
	}
}

func TestAwaitReadyHonorsCancellation(t *testing.T) {
	fb := &fake.Backend{States: []backend.FileState{backend.FileStateProcessing}}
	m := New(fb, logger.NewNop())

	h, err := m.Upload(context.Background(), "/tmp/a.mp3")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.AwaitReady(ctx, h, 10, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReleaseIsIdempotent(t *testing.T) {
	fb := &fake.Backend{}
	m := New(fb, logger.NewNop())
	ctx := context.Background()

	h, err := m.Upload(ctx, "/tmp/a.wav")
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", h.MIMEType)

	m.Release(ctx, h)
	m.Release(ctx, h)
	m.Release(ctx, nil)

	assert.True(t, h.Released())
	assert.Equal(t, 1, fb.Deletes(h.ResourceID))
}

func TestReleaseSwallowsDeleteErrors(t *testing.T) {
	fb := &fake.Backend{DeleteErr: errors.New("gone")}
	m := New(fb, logger.NewNop())
	ctx := context.Background()

	h, err := m.Upload(ctx, "/tmp/a.mp3")
	require.NoError(t, err)

	assert.NotPanics(t, func() { m.Release(ctx, h) })
	assert.Equal(t, 1, fb.TotalDeletes())
}

func TestDetectMIMEType(t *testing.T) {
	tests := map[string]string{
		"talk.MP3":  "audio/mpeg",
		"a.m4a":     "audio/mp4",
		"clip.mp4":  "video/mp4",
		"noext":     "audio/mpeg",
		"song.flac": "audio/flac",
	}
	for in, want := range tests {
		if got := DetectMIMEType(in); got != want {
			t.Errorf("DetectMIMEType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsAudioIsVideo(t *testing.T) {
	tests := []struct {
		path  string
		audio bool
		video bool
	}{
		{"a.mp3", true, false},
		{"b.WAV", true, false},
		{"c.mp4", false, true},
		{"d.mkv", false, true},
		{"e.txt", false, false},
	}
	for _, tt := range tests {
		if got := IsAudio(tt.path); got != tt.audio {
			t.Errorf("IsAudio(%q) = %v, want %v", tt.path, got, tt.audio)
		}
		if got := IsVideo(tt.path); got != tt.video {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.video)
		}
	}
}
