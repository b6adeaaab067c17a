package page_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/i18n"
	"github.com/Tiliavir/time-manager/internal/lunch"
	"github.com/Tiliavir/time-manager/internal/page"
)

func load(t *testing.T) *page.Document {
	t.Helper()
	f, err := os.Open("testdata/portal.html")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := page.Parse(f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func html(t *testing.T, doc *page.Document) string {
	t.Helper()
	out, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	return out
}

func TestSnapshot(t *testing.T) {
	snap := load(t).Snapshot("Horodatage")

	if len(snap.ScheduleEntries) != 3 {
		t.Fatalf("ScheduleEntries = %d, want 3", len(snap.ScheduleEntries))
	}
	first := snap.ScheduleEntries[0]
	if first.Label != "lundi 02/03/2026" || !strings.Contains(first.Content, "8:30") {
		t.Errorf("first entry = %+v", first)
	}

	want := []string{"08:00", "12:00", "13:00"}
	if len(snap.PunchTexts) != len(want) {
		t.Fatalf("PunchTexts = %q, want %q", snap.PunchTexts, want)
	}
	for i := range want {
		if snap.PunchTexts[i] != want[i] {
			t.Errorf("PunchTexts[%d] = %q, want %q", i, snap.PunchTexts[i], want[i])
		}
	}
}

func TestSnapshotFeedsEngine(t *testing.T) {
	snap := load(t).Snapshot("Horodatage")
	e := engine.New(engine.Settings{
		DailyHours:         8,
		WorkingDaysPerWeek: 5,
		Lunch:              lunch.Policy{StartHour: 11, EndHour: 14, MinimumDurationMinutes: 30},
		Language:           "fr",
	}, nil)

	res := e.Compute(snap, time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC))
	if res.Today.TotalWorked != 5*time.Hour {
		t.Errorf("TotalWorked = %v, want 5h", res.Today.TotalWorked)
	}
	if want := 16*time.Hour + 30*time.Minute + 5*time.Hour; res.Today.TotalWorkedThisWeek != want {
		t.Errorf("TotalWorkedThisWeek = %v, want %v", res.Today.TotalWorkedThisWeek, want)
	}
	if !res.Today.PauseDetected {
		t.Error("PauseDetected = false, want true")
	}
}

func TestReady(t *testing.T) {
	doc := load(t)
	if !doc.Ready("Bienvenue") {
		t.Error("Ready = false for the portal page")
	}

	bare, err := page.Parse(strings.NewReader("<html><body><p>Chargement...</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if bare.Ready("Bienvenue") {
		t.Error("Ready = true for a loading page")
	}
	if bare.Ready("") {
		t.Error("Ready = true with empty welcome text")
	}
}

func sampleResult() engine.Result {
	return engine.Result{
		Today: engine.Today{
			TotalWorked:   5 * time.Hour,
			RemainingTime: 3 * time.Hour,
			EstimatedEnd:  time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC),
			HasEstimate:   true,
		},
		Week: engine.Week{RemainingTime: 20 * time.Hour},
	}
}

func TestRenderSummary(t *testing.T) {
	doc := load(t)
	tr := i18n.For("fr")

	for i := 0; i < 2; i++ {
		if err := doc.RenderSummary(sampleResult(), tr, 8); err != nil {
			t.Fatalf("RenderSummary: %v", err)
		}
	}

	out := html(t, doc)
	if n := strings.Count(out, `class="tm-row"`); n != 6 {
		t.Errorf("summary rows = %d, want 6 after re-render", n)
	}
	for _, want := range []string{
		`<td role="gridcell" colspan="2">Heures travaillées</td><td role="gridcell" style="text-align:right;">5:00</td>`,
		"Temps restant (8:00)",
		"17:00",
		"Temps restant dans la semaine",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSummaryMissingTable(t *testing.T) {
	doc, err := page.Parse(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	err = doc.RenderSummary(sampleResult(), i18n.For("en"), 8)
	if !errors.Is(err, page.ErrTableNotFound) {
		t.Fatalf("RenderSummary error = %v, want ErrTableNotFound", err)
	}

	if err := doc.RenderOverlay(sampleResult(), i18n.For("en"), 8); err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}
	if err := doc.RenderOverlay(sampleResult(), i18n.For("en"), 8); err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}
	out := html(t, doc)
	if strings.Count(out, `id="tm-overlay"`) != 1 {
		t.Errorf("overlay count != 1 in %s", out)
	}
	if !strings.Contains(out, "Worked Hours") {
		t.Error("overlay lacks summary rows")
	}
}

func TestRemoveRows(t *testing.T) {
	doc := load(t)
	if n := doc.RemoveRows([]string{"Heures sup.", "Inconnu"}); n != 1 {
		t.Errorf("RemoveRows = %d, want 1", n)
	}
	out := html(t, doc)
	if strings.Contains(out, "Heures sup.") {
		t.Error("row still present")
	}
	if strings.Contains(out, "k-header") {
		t.Error("header cells still present")
	}
	if !strings.Contains(out, "RTT") {
		t.Error("unrelated row removed")
	}
}

func TestConvertRowsToDays(t *testing.T) {
	doc := load(t)
	if n := doc.ConvertRowsToDays([]string{"Vacances"}, 8.4, i18n.For("fr").DaysLabel); n != 1 {
		t.Fatalf("ConvertRowsToDays = %d, want 1", n)
	}
	out := html(t, doc)
	want := `<td role="gridcell">Vacances (j)</td><td role="gridcell">2.5</td><td role="gridcell">2</td>`
	if !strings.Contains(out, want) {
		t.Errorf("converted row not found in output")
	}
}

func TestColorSchedulerDiffs(t *testing.T) {
	doc := load(t)
	if n := doc.ColorSchedulerDiffs(); n != 3 {
		t.Errorf("ColorSchedulerDiffs = %d, want 3", n)
	}
	out := html(t, doc)
	for _, want := range []string{
		`<div style="color:green;">Écart du jour : +0:06</div>`,
		`<div style="font-weight:bold;color:red;">Écart du jour : -0:24</div>`,
		`<div style="color:grey;">Écart du jour : 0:00</div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDiffColor(t *testing.T) {
	tests := []struct {
		text  string
		color string
		ok    bool
	}{
		{"Écart : -1:30", page.ColorNegative, true},
		{"Écart du jour: -0:01", page.ColorNegative, true},
		{"Écart : 0:00", page.ColorZero, true},
		{"Écart : -0:00", page.ColorZero, true},
		{"Écart : 2:15", page.ColorPositive, true},
		{"Écart : +0:05", page.ColorPositive, true},
		{"Temps traité : 8:00", "", false},
	}
	for _, tt := range tests {
		color, ok := page.DiffColor(tt.text)
		if color != tt.color || ok != tt.ok {
			t.Errorf("DiffColor(%q) = %q, %v, want %q, %v", tt.text, color, ok, tt.color, tt.ok)
		}
	}
}
