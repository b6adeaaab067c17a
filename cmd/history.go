package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/storage"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		week   bool
		days   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the recorded daily summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			base, err := storage.BaseDir()
			if err != nil {
				return err
			}

			if days < 1 {
				days = 1
			}
			from, to := timecalc.StartOfDay(now.AddDate(0, 0, -(days - 1))), timecalc.EndOfDay(now)
			title := fmt.Sprintf("Last %d days", days)
			if week {
				from, to = timecalc.WeekRange(now)
				title = "Week " + timecalc.ISOWeekLabel(now)
			}

			summaries, err := storage.LoadRange(base, from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			fmt.Fprintln(out, title)
			fmt.Fprintln(out, "------------------------------------------------")
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No summaries recorded.")
				return nil
			}
			fmt.Fprintf(out, "%-12s%-8s%-11s%-6s%s\n", "Date", "Worked", "Remaining", "End", "Week")
			for _, s := range summaries {
				end := engine.NoEstimate
				if s.EstimatedEnd != nil {
					end = *s.EstimatedEnd
				}
				weekBalance := timecalc.FormatHours(float64(s.WeekRemainingSeconds) / 3600)
				if s.Overtime {
					weekBalance = "+" + weekBalance
				}
				fmt.Fprintf(out, "%-12s%-8s%-11s%-6s%s\n",
					s.Date,
					timecalc.FormatHours(float64(s.WorkedSeconds)/3600),
					timecalc.FormatHours(float64(s.RemainingSeconds)/3600),
					end,
					weekBalance,
				)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&week, "week", false, "Show the current ISO week")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summaries as JSON")
	return cmd
}
