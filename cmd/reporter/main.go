package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	command := NewReporterCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewReporterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reporter",
		Short: "Transcribe and summarize audio into reports",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(NewCmdServe())
	cmd.AddCommand(NewCmdRun())
	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdGet())

	return cmd
}
