package main

import (
	"fmt"
	"io"

	"github.com/josephlewis42/simpleshell/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the session event log.",
}

// readEvents feeds every entry of the configured event log to handler.
func readEvents(handler func(le *logger.LogEntry)) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if config.EventLog == "" {
		return fmt.Errorf("no event_log is configured")
	}

	fd, err := config.ReadEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	return logger.ReadJSONLinesLog(fd, handler)
}

func printYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report := logger.NewReport()
		if err := readEvents(report.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), report)
	},
}

var sessionsCommand = &cobra.Command{
	Use:   "sessions",
	Short: "Show the commands run in each session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var transcripts logger.TranscriptReport
		if err := readEvents(transcripts.Update); err != nil {
			return err
		}

		return printYAML(cmd.OutOrStdout(), &transcripts)
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(sessionsCommand)
}
