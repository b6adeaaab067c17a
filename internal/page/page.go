// Package page reads the time-management portal page and applies the summary
// and cleanup edits to it.
package page

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Tiliavir/time-manager/internal/model"
)

// Selectors of the portal's scheduler widget and summary table.
const (
	SummaryTable     = "#__xmlview2--gcontigent"
	scheduleDays     = ".k-scheduler-header-wrap .k-nav-day"
	schedulerDiffs   = ".k-scheduler-table .k-nav-day"
	eventTemplate    = ".k-event-template"
	dataRows         = "tr[data-uid]"
	firstGridCell    = "td[role='gridcell']"
	headerCells      = "th.k-header"
	overlayID        = "tm-overlay"
	summaryTableBody = SummaryTable + " tbody"
)

// ErrTableNotFound is returned when the summary table is missing.
var ErrTableNotFound = errors.New("summary table not found")

// Document is a parsed portal page.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Snapshot reads the scheduler day cells and the punch markers. A punch
// marker is an event template containing marker; the marker word is removed
// from its text.
func (d *Document) Snapshot(marker string) model.Snapshot {
	var snap model.Snapshot

	d.doc.Find(scheduleDays).Each(func(_ int, day *goquery.Selection) {
		label := strings.TrimSpace(day.Find("strong").First().Text())
		content := day.Find("div:last-child").First().Text()
		snap.ScheduleEntries = append(snap.ScheduleEntries, model.ScheduleEntry{
			Label:   label,
			Content: content,
		})
	})

	d.doc.Find(eventTemplate).Each(func(_ int, ev *goquery.Selection) {
		inner, err := ev.Html()
		if err != nil || !strings.Contains(inner, marker) {
			return
		}
		text := strings.Replace(ev.Text(), marker, "", 1)
		snap.PunchTexts = append(snap.PunchTexts, strings.TrimSpace(text))
	})

	return snap
}

// Ready reports whether the page looks fully loaded: it shows the welcome
// text or already contains the summary table.
func (d *Document) Ready(welcome string) bool {
	if d.doc.Find(SummaryTable).Length() > 0 {
		return true
	}
	return welcome != "" && strings.Contains(d.doc.Find("body").Text(), welcome)
}

// HTML serialises the whole document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// Write serialises the whole document to w.
func (d *Document) Write(w io.Writer) error {
	html, err := d.HTML()
	if err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	_, err = io.WriteString(w, html)
	return err
}
