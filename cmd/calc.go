package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/calculator"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

func newCalcCmd(a *app) *cobra.Command {
	var target float64
	cmd := &cobra.Command{
		Use:   "calc ENTRY...",
		Short: "Add up typed day entries such as 08:00-17:00/0:45",
		Long: `calc works out the time worked from one entry per day and compares the
total with the weekly target. Entries are HH:MM-HH:MM, HH:MM-HH:MM/H:MM with a
pause, or a plain H:MM total.`,
		Example: "  tm calc 08:00-17:00/0:45 08:30-16:00/0:30 7:30",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]calculator.Entry, 0, len(args))
			for _, arg := range args {
				e, err := calculator.ParseEntry(arg)
				if err != nil {
					return err
				}
				entries = append(entries, e)
			}

			hours := target
			if hours <= 0 {
				hours = a.cfg.DailyWorkHours * float64(a.cfg.WorkingDaysPerWeek)
			}
			s := calculator.Week(entries, timecalc.HoursToDuration(hours))

			tr := a.tr()
			out := cmd.OutOrStdout()
			for i, d := range s.Days {
				fmt.Fprintf(out, "%-20s%s\n", args[i], timecalc.FormatDuration(d))
			}
			fmt.Fprintln(out, "--------------------------------")
			fmt.Fprintf(out, "%-20s%s\n", "Total", timecalc.FormatDuration(s.Total))
			fmt.Fprintf(out, "%-20s%s\n", "Target", timecalc.FormatHours(hours))
			label := tr.RemainingWeekTime
			if s.IsOvertime {
				label = tr.OvertimeThisWeek
			}
			fmt.Fprintf(out, "%s: %s\n", label, timecalc.FormatDuration(s.Remaining))
			return nil
		},
	}
	cmd.Flags().Float64Var(&target, "target", 0, "Weekly target in hours (default daily hours × working days)")
	return cmd
}
