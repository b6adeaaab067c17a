package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/report"
	"github.com/Tiliavir/time-manager/internal/storage"
)

func newTodayCmd(a *app) *cobra.Command {
	var (
		format   string
		noRecord bool
	)
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's worked and remaining time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, source, err := a.compute(cmd.Context())
			if err != nil {
				return err
			}

			rows := report.Rows(res, a.tr(), a.cfg.DailyWorkHours)
			if err := report.Write(cmd.OutOrStdout(), rows, format); err != nil {
				return err
			}

			if noRecord {
				return nil
			}
			base, err := storage.BaseDir()
			if err != nil {
				return err
			}
			if err := storage.RecordSummary(base, res.Now, storage.Summarize(res, source)); err != nil {
				return fmt.Errorf("recording summary: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", report.FormatText, "Output format: text, csv, json")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not store the summary in the history")
	return cmd
}
