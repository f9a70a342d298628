package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
	"github.com/nguyentantai21042004/audio-report/internal/store"
)

func TestNewReporterCommand(t *testing.T) {
	root := NewReporterCommand()

	for _, name := range []string{"serve", "run", "list", "get"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err)
			require.Equal(t, name, cmd.Name())
			for _, flag := range []string{"config", "env-file", "api-key"} {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "%s has no --%s", name, flag)
			}
		})
	}
}

// seedConfig writes a config whose database holds one queued job.
func seedConfig(t *testing.T) (GlobalOptions, *domain.Job) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "jobs.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf("paths:\n  reports: %s\ndatabase:\n  path: %s\nlogging:\n  level: error\n",
		filepath.Join(dir, "reports"), dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	st, err := store.Open(dbPath, logger.NewNop())
	require.NoError(t, err)
	job := &domain.Job{
		ID:            "job-1",
		Status:        domain.JobStatusQueued,
		SourcePath:    "/in/talk.mp3",
		SourceName:    "talk.mp3",
		ModelID:       "gemini-2.5-flash",
		OutputOptions: []string{domain.OptionSummary},
		SubmitTime:    time.Now(),
	}
	require.NoError(t, st.Create(context.Background(), job))
	require.NoError(t, st.Close())

	return GlobalOptions{ConfigFile: cfgPath}, job
}

func TestListOptionsRun(t *testing.T) {
	global, job := seedConfig(t)

	tests := []struct {
		output string
		want   string
	}{
		{tableFormat, "STATUS"},
		{jsonFormat, `"status": "queued"`},
		{yamlFormat, "source_name: talk.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			o := &ListOptions{GlobalOptions: global, Output: tt.output}
			var buf bytes.Buffer
			require.NoError(t, o.Run(context.Background(), &buf))
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), job.ID)
		})
	}
}

func TestGetOptionsRun(t *testing.T) {
	global, job := seedConfig(t)

	o := &GetOptions{GlobalOptions: global, Output: yamlFormat}
	var buf bytes.Buffer
	require.NoError(t, o.Run(context.Background(), &buf, job.ID))
	assert.Contains(t, buf.String(), "status: queued")
	assert.Contains(t, buf.String(), "source_path: /in/talk.mp3")

	err := o.Run(context.Background(), &bytes.Buffer{}, "missing")
	assert.ErrorContains(t, err, "job missing")
}

func TestValidateOutput(t *testing.T) {
	for _, f := range legalOutputTypes {
		assert.NoError(t, validateOutput(f))
	}
	assert.Error(t, validateOutput("xml"))
}
