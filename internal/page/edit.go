package page

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/i18n"
	"github.com/Tiliavir/time-manager/internal/report"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

// rowClass marks the rows this package adds so a later pass can replace them.
const rowClass = "tm-row"

var diffPattern = regexp.MustCompile(`Écart.*:\s*([+-]?\d+):(\d{2})`)

// Diff colours.
const (
	ColorNegative = "red"
	ColorZero     = "grey"
	ColorPositive = "green"
)

// RenderSummary appends the summary rows to the portal's summary table,
// replacing rows added by an earlier pass.
func (d *Document) RenderSummary(res engine.Result, tr i18n.Strings, dailyHours float64) error {
	tbody := d.doc.Find(summaryTableBody).First()
	if tbody.Length() == 0 {
		return ErrTableNotFound
	}
	tbody.Find("tr." + rowClass).Remove()
	for _, r := range report.Rows(res, tr, dailyHours) {
		tbody.AppendHtml(summaryRow(r))
	}
	return nil
}

// RenderOverlay adds a floating panel with the summary rows to the body. It
// serves pages that lack the summary table.
func (d *Document) RenderOverlay(res engine.Result, tr i18n.Strings, dailyHours float64) error {
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return fmt.Errorf("page has no body")
	}
	d.doc.Find("#" + overlayID).Remove()

	var b strings.Builder
	fmt.Fprintf(&b, `<div id="%s" style="position:fixed;bottom:16px;right:16px;z-index:9999;background:#fff;border:1px solid #ccc;padding:8px;font-family:sans-serif;font-size:13px;">`, overlayID)
	b.WriteString(`<table><tbody>`)
	for _, r := range report.Rows(res, tr, dailyHours) {
		b.WriteString(summaryRow(r))
	}
	b.WriteString(`</tbody></table></div>`)
	body.AppendHtml(b.String())
	return nil
}

func summaryRow(r report.Row) string {
	return `<tr role="row" class="` + rowClass + `"><td role="gridcell" colspan="2">` + html.EscapeString(r.Label) +
		`</td><td role="gridcell" style="text-align:right;">` + html.EscapeString(r.Value) + `</td></tr>`
}

// RemoveRows deletes the data rows whose first cell text is one of names,
// together with every column header of the grid. It returns the number of
// data rows removed.
func (d *Document) RemoveRows(names []string) int {
	removed := 0
	d.doc.Find(dataRows).Each(func(_ int, row *goquery.Selection) {
		if slices.Contains(names, firstCellText(row)) {
			row.Remove()
			removed++
		}
	})
	d.doc.Find(headerCells).Remove()
	return removed
}

// ConvertRowsToDays rewrites the data rows whose first cell text is one of
// names: the hour balance in the second cell becomes days of dailyHours and
// the third cell the whole days. It returns the number of rows rewritten.
func (d *Document) ConvertRowsToDays(names []string, dailyHours float64, label string) int {
	converted := 0
	d.doc.Find(dataRows).Each(func(_ int, row *goquery.Selection) {
		if !slices.Contains(names, firstCellText(row)) {
			return
		}
		first := row.Find("td:nth-child(1)").First()
		second := row.Find("td:nth-child(2)").First()
		third := row.Find("td:nth-child(3)").First()
		hoursText := strings.TrimSpace(second.Text())
		if first.Length() == 0 || second.Length() == 0 || third.Length() == 0 || hoursText == "" {
			return
		}
		days := timecalc.HoursToDays(timecalc.ParseHours(hoursText), dailyHours)
		first.SetText(label)
		second.SetText(strconv.FormatFloat(days, 'f', -1, 64))
		third.SetText(strconv.FormatFloat(math.Floor(days), 'f', -1, 64))
		converted++
	})
	return converted
}

// ColorSchedulerDiffs colours the daily balance ("Écart ...: -1:30") of every
// scheduler day: red when negative, grey when zero and green when positive.
// It returns the number of days coloured.
func (d *Document) ColorSchedulerDiffs() int {
	colored := 0
	d.doc.Find(schedulerDiffs).Each(func(_ int, day *goquery.Selection) {
		divs := day.Find("div")
		if divs.Length() < 2 {
			return
		}
		info := divs.Eq(1)
		color, ok := DiffColor(info.Text())
		if !ok {
			return
		}
		info.SetAttr("style", withColor(info.AttrOr("style", ""), color))
		colored++
	})
	return colored
}

// DiffColor returns the colour for the balance found in text.
func DiffColor(text string) (string, bool) {
	m := diffPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	hours, _ := strconv.Atoi(strings.TrimLeft(m[1], "+-"))
	minutes, _ := strconv.Atoi(m[2])
	total := hours*60 + minutes
	if strings.HasPrefix(m[1], "-") {
		total = -total
	}
	switch {
	case total < 0:
		return ColorNegative, true
	case total == 0:
		return ColorZero, true
	default:
		return ColorPositive, true
	}
}

func withColor(style, color string) string {
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" || strings.HasPrefix(strings.ToLower(decl), "color:") {
			continue
		}
		kept = append(kept, decl)
	}
	kept = append(kept, "color:"+color)
	return strings.Join(kept, ";") + ";"
}

func firstCellText(row *goquery.Selection) string {
	return strings.TrimSpace(row.Find(firstGridCell).First().Text())
}
