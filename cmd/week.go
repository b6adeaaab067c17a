package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/timecalc"
)

func newWeekCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show this week's worked time against the weekly target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, _, err := a.compute(cmd.Context())
			if err != nil {
				return err
			}
			tr := a.tr()
			e := a.newEngine()
			out := cmd.OutOrStdout()

			label := tr.RemainingWeekTime
			if res.Week.IsOvertime {
				label = tr.OvertimeThisWeek
			}
			fmt.Fprintf(out, "Week %s\n", timecalc.ISOWeekLabel(res.Now))
			fmt.Fprintln(out, "--------------------------------")
			fmt.Fprintf(out, "%-20s%s\n", tr.WorkHours, timecalc.FormatDuration(res.Week.TotalWorked))
			fmt.Fprintf(out, "%-20s%s\n", "Target", timecalc.FormatDuration(e.WeekTarget()))
			fmt.Fprintln(out, "--------------------------------")
			fmt.Fprintf(out, "%s: %s\n", label, timecalc.FormatDuration(res.Week.RemainingTime))
			return nil
		},
	}
}
