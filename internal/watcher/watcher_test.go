package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, filepath.Base(path))
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func startWatcher(t *testing.T, opts Options) (string, *recorder, context.CancelFunc, <-chan error) {
	t.Helper()
	dir := t.TempDir()
	rec := &recorder{}

	w, err := New(dir, rec.handle, logger.NewNop(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	return dir, rec, cancel, done
}

func TestWatcherPicksUpAudio(t *testing.T) {
	dir, rec, cancel, done := startWatcher(t, Options{Settle: 10 * time.Millisecond})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "standup.mp3"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		return len(rec.seen()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []string{"standup.mp3"}, rec.seen())
}

func TestWatcherAcceptsVideoWhenEnabled(t *testing.T) {
	dir, rec, cancel, done := startWatcher(t, Options{AcceptVideo: true})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		return len(rec.seen()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, []string{"clip.mp4"}, rec.seen())
}

func TestWatcherStopEndsStart(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, (&recorder{}).handle, logger.NewNop(), Options{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), (&recorder{}).handle, logger.NewNop(), Options{})
	assert.Error(t, err)
}
