package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nguyentantai21042004/audio-report/internal/backend"
	"github.com/nguyentantai21042004/audio-report/internal/config"
	"github.com/nguyentantai21042004/audio-report/internal/credential"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
	"github.com/nguyentantai21042004/audio-report/internal/pipeline"
	"github.com/nguyentantai21042004/audio-report/internal/render"
	"github.com/nguyentantai21042004/audio-report/internal/service"
	"github.com/nguyentantai21042004/audio-report/internal/store"
	"github.com/nguyentantai21042004/audio-report/internal/worker"
	"github.com/nguyentantai21042004/audio-report/pkg/executor"
)

// GlobalOptions are the flags every command accepts.
type GlobalOptions struct {
	ConfigFile string
	EnvFile    string
	APIKey     string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ConfigFile: "config.yaml",
		EnvFile:    ".env",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFile, "config", "c", o.ConfigFile, "Path to configuration file")
	fs.StringVar(&o.EnvFile, "env-file", o.EnvFile, "Optional dotenv file with API keys")
	fs.StringVar(&o.APIKey, "api-key", o.APIKey, "Backend API key overriding the environment for this process")
}

// Complete loads the dotenv file, if there is one.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	if o.EnvFile == "" {
		return nil
	}
	if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// loadConfig reads the config file and builds the logger it describes.
func (o *GlobalOptions) loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

// openStore opens only the job store, for read-only commands.
func (o *GlobalOptions) openStore() (*config.Config, logger.Logger, store.Store, error) {
	cfg, log, err := o.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, st, nil
}

// app is the wired engine shared by the commands.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	store   store.Store
	pool    *worker.Pool
	service service.Service
}

// newApp wires the store, pipeline, worker pool and service. The pool is
// started; callers must call close.
func (o *GlobalOptions) newApp(ctx context.Context) (*app, error) {
	cfg, log, st, err := o.openStore()
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{cfg.Paths.Reports, cfg.Paths.Temp} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	creds, err := credential.FromEnv()
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if o.APIKey != "" {
		creds.SetTemporary(o.APIKey)
	}
	if !creds.Available(ctx) {
		log.Warn(ctx, "No backend API key configured; jobs will fail until one is provided")
	}

	var writerOpts []render.Option
	if cfg.Storage.S3.Endpoint != "" {
		mirror, err := render.NewMinioMirror(cfg.Storage.S3)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		writerOpts = append(writerOpts, render.WithMirror(mirror))
		log.Info(ctx, "Mirroring reports to s3://%s/%s", cfg.Storage.S3.Bucket, cfg.Storage.S3.Prefix)
	}
	writer := render.NewWriter(cfg.Paths.Reports, cfg.Report.URLPrefix, log, writerOpts...)

	newBackend := func(ctx context.Context, cred credential.Credential) (backend.Backend, error) {
		return backend.NewGemini(ctx, log, cred.APIKeys)
	}

	pl := pipeline.New(log, st, creds, newBackend, writer, executor.New(), pipeline.Options{
		MaxAttempts:   cfg.Polling.MaxAttempts,
		PollInterval:  cfg.Polling.Interval,
		BreakInterval: cfg.Report.BreakInterval,
		ExtractAudio:  cfg.Media.ExtractAudio,
		FFmpegPath:    cfg.Media.FFmpegPath,
		TempDir:       cfg.Paths.Temp,
	})

	pool := worker.New(pl, log, cfg.Performance.MaxConcurrent)
	pool.Start(ctx)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		pool:    pool,
		service: service.New(log, st, pool, cfg.Gemini.Model),
	}, nil
}

// close drains the pool and closes the store.
func (a *app) close(ctx context.Context) {
	if err := a.pool.Shutdown(ctx); err != nil {
		a.log.Warn(ctx, "Worker pool did not drain: %v", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn(ctx, "Close store: %v", err)
	}
	logger.Sync(a.log)
}
