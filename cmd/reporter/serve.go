package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nguyentantai21042004/audio-report/internal/metrics"
	"github.com/nguyentantai21042004/audio-report/internal/service"
	"github.com/nguyentantai21042004/audio-report/internal/watcher"
)

type ServeOptions struct {
	GlobalOptions

	DrainTimeout time.Duration
}

func DefaultServeOptions() *ServeOptions {
	return &ServeOptions{
		GlobalOptions: DefaultGlobalOptions(),
		DrainTimeout:  10 * time.Minute,
	}
}

func NewCmdServe() *cobra.Command {
	o := DefaultServeOptions()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the worker pool, drop-folder watcher and metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ServeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.DurationVar(&o.DrainTimeout, "drain-timeout", o.DrainTimeout, "How long to wait for in-flight jobs on shutdown")
}

func (o *ServeOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	a, err := o.newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), o.DrainTimeout)
		defer drainCancel()
		a.close(drainCtx)
	}()

	a.log.Info(ctx, "Report engine started (workers: %d, model: %s)", a.cfg.Performance.MaxConcurrent, a.cfg.Gemini.Model)

	if _, err := a.service.ResumeQueued(ctx); err != nil {
		a.log.Error(ctx, "Resume queued jobs: %v", err)
	}

	errCh := make(chan error, 2)

	if a.cfg.Metrics.Address != "" {
		go func() {
			if err := metrics.Serve(ctx, a.cfg.Metrics.Address, a.log, metrics.NewJobStatusCollector(a.store, a.log)); err != nil {
				errCh <- err
			}
		}()
	}

	if a.cfg.Watcher.Enabled {
		if err := os.MkdirAll(a.cfg.Paths.Input, 0755); err != nil {
			return err
		}
		w, err := watcher.New(a.cfg.Paths.Input, submitFromFolder(a), a.log, watcher.Options{
			AcceptVideo: a.cfg.Media.ExtractAudio,
			Settle:      500 * time.Millisecond,
		})
		if err != nil {
			return err
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.log.Info(context.Background(), "Shutdown signal received, draining in-flight jobs")
		return nil
	case err := <-errCh:
		a.log.Error(ctx, "Stopping: %v", err)
		return err
	}
}

func submitFromFolder(a *app) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		id, err := a.service.SubmitJob(ctx, service.SubmitRequest{
			SourcePath:    path,
			OutputOptions: a.cfg.Watcher.OutputOptions,
		})
		if err != nil {
			return err
		}
		a.log.Info(ctx, "Submitted %s as job %s", filepath.Base(path), id)
		return nil
	}
}
