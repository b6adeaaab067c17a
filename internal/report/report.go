// Package report turns a computation result into the labelled summary rows
// shown on the page, in the terminal and in exports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/i18n"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

// Row is one label/value line of the summary.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rows returns the six summary rows in display order: worked hours, time
// remaining (labelled with the daily target), estimated end, pause detected,
// pause added and the weekly balance.
func Rows(res engine.Result, tr i18n.Strings, dailyHours float64) []Row {
	today, week := res.Today, res.Week

	pauseAdded := tr.None
	if today.PauseAdded > 0 {
		pauseAdded = fmt.Sprintf("%d %s", int64(today.PauseAdded.Minutes()), tr.Minutes)
	}

	weekLabel := tr.RemainingWeekTime
	if week.IsOvertime {
		weekLabel = tr.OvertimeThisWeek
	}

	return []Row{
		{Label: tr.WorkHours, Value: timecalc.FormatDuration(today.TotalWorked)},
		{Label: tr.TimeRemaining + " (" + timecalc.FormatHours(dailyHours) + ")", Value: timecalc.FormatDuration(today.RemainingTime)},
		{Label: tr.EstimatedEnd, Value: today.EstimatedEndText()},
		{Label: tr.PauseDetected, Value: tr.YesNo(today.PauseDetected)},
		{Label: tr.PauseAdded, Value: pauseAdded},
		{Label: weekLabel, Value: timecalc.FormatDuration(week.RemainingTime)},
	}
}

// Formats accepted by Write.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Write prints rows to w as aligned text, CSV or JSON.
func Write(w io.Writer, rows []Row, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatCSV:
		if _, err := fmt.Fprintln(w, "label,value"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%s,%s\n", csvEscape(r.Label), csvEscape(r.Value)); err != nil {
				return err
			}
		}
		return nil
	case FormatText, "":
		width := 0
		for _, r := range rows {
			if n := len([]rune(r.Label)); n > width {
				width = n
			}
		}
		for _, r := range rows {
			pad := strings.Repeat(" ", width-len([]rune(r.Label)))
			if _, err := fmt.Fprintf(w, "%s%s  %s\n", r.Label, pad, r.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, csv or json)", format)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
