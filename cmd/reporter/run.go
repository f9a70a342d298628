package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/service"
)

type RunOptions struct {
	GlobalOptions

	Model   string
	Options []string
	Summary string
	Script  string
	Output  string
}

func DefaultRunOptions() *RunOptions {
	return &RunOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Options:       []string{domain.OptionSummaryTranscript},
		Output:        jsonFormat,
	}
}

func NewCmdRun() *cobra.Command {
	o := DefaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Process one audio file and wait for the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args[0])
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *RunOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Model, "model", "m", o.Model, "Model id (defaults to gemini.model)")
	fs.StringSliceVar(&o.Options, "options", o.Options, "Output options: processing mode plus extra formats (md, txt, docx)")
	fs.StringVar(&o.Summary, "summary-prompt", o.Summary, "Custom summary prompt")
	fs.StringVar(&o.Script, "transcript-prompt", o.Script, "Custom transcript prompt")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
}

func (o *RunOptions) Run(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := o.newApp(context.Background())
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	prompts := map[string]string{}
	if o.Summary != "" {
		prompts[domain.PromptSummary] = o.Summary
	}
	if o.Script != "" {
		prompts[domain.PromptTranscript] = o.Script
	}

	id, err := a.service.SubmitJob(ctx, service.SubmitRequest{
		SourcePath:    path,
		ModelID:       o.Model,
		OutputOptions: o.Options,
		CustomPrompts: prompts,
	})
	if err != nil {
		return err
	}
	a.log.Info(ctx, "Submitted job %s", id)

	job, err := waitForTerminal(ctx, a.service, id, time.Second)
	if err != nil {
		return err
	}
	if err := printValue(os.Stdout, o.Output, job); err != nil {
		return err
	}
	if job.Status == domain.JobStatusFailed {
		return fmt.Errorf("job %s failed: %s", job.ID, job.ErrorMessage)
	}
	return nil
}

func waitForTerminal(ctx context.Context, svc service.Service, id string, every time.Duration) (*domain.Job, error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		job, err := svc.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.IsTerminal() {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stopped waiting for job %s (%s): %w", id, job.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}
