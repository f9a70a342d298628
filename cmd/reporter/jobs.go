package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

const (
	jsonFormat  = "json"
	yamlFormat  = "yaml"
	tableFormat = "table"
)

var legalOutputTypes = []string{jsonFormat, yamlFormat, tableFormat}

type ListOptions struct {
	GlobalOptions

	Output string
}

func DefaultListOptions() *ListOptions {
	return &ListOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdList() *cobra.Command {
	o := DefaultListOptions()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context(), os.Stdout)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ListOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	bindOutput(fs, &o.Output)
}

func (o *ListOptions) Run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, _, st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	jobs, err := st.List(ctx)
	if err != nil {
		return err
	}
	if o.Output == tableFormat {
		return printTable(w, jobs)
	}
	return printValue(w, o.Output, jobs)
}

type GetOptions struct {
	GlobalOptions

	Output string
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        tableFormat,
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context(), os.Stdout, args[0])
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	bindOutput(fs, &o.Output)
}

func (o *GetOptions) Run(ctx context.Context, w io.Writer, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, _, st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	job, err := st.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("job %s: %w", id, err)
	}
	if o.Output == tableFormat {
		return printTable(w, []domain.JobSummary{job.Summary()})
	}
	return printValue(w, o.Output, job)
}

func bindOutput(fs *pflag.FlagSet, output *string) {
	fs.StringVarP(output, "output", "o", *output,
		fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func validateOutput(format string) error {
	for _, f := range legalOutputTypes {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
}

func printValue(w io.Writer, format string, v any) error {
	switch format {
	case yamlFormat:
		// round-trip through JSON so yaml keys follow the json tags
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(generic)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func printTable(w io.Writer, jobs []domain.JobSummary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSOURCE\tMODEL\tSUBMITTED\tERROR")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Status, j.SourceName, j.ModelID, j.SubmitTime.Local().Format(time.DateTime), j.ErrorMessage)
	}
	return tw.Flush()
}
