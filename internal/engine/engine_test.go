package engine_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/lunch"
	"github.com/Tiliavir/time-manager/internal/model"
)

// 2026-03-04 is a Wednesday.
var now = time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)

func settings(daily float64) engine.Settings {
	return engine.Settings{
		DailyHours:         daily,
		WorkingDaysPerWeek: 5,
		Lunch:              lunch.Policy{StartHour: 11, EndHour: 14, MinimumDurationMinutes: 30},
		Language:           "fr",
	}
}

func todayCell(processed string) model.ScheduleEntry {
	return model.ScheduleEntry{Label: "mercredi 04/03/2026", Content: "Temps traité: " + processed}
}

func TestComputeRemainingTime(t *testing.T) {
	e := engine.New(settings(8), nil)

	res := e.Compute(model.Snapshot{ScheduleEntries: []model.ScheduleEntry{todayCell("6:00")}}, now)
	if res.Today.TotalWorked != 6*time.Hour {
		t.Errorf("TotalWorked = %v, want 6h", res.Today.TotalWorked)
	}
	if res.Today.RemainingTime != 2*time.Hour {
		t.Errorf("RemainingTime = %v, want 2h", res.Today.RemainingTime)
	}
	if !res.Today.HasEstimate || !res.Today.EstimatedEnd.Equal(now.Add(2*time.Hour)) {
		t.Errorf("EstimatedEnd = %v (has=%v), want 16:00", res.Today.EstimatedEnd, res.Today.HasEstimate)
	}
	if got := res.Today.EstimatedEndText(); got != "16:00" {
		t.Errorf("EstimatedEndText = %q, want 16:00", got)
	}
}

func TestComputeRemainingFloorsAtZero(t *testing.T) {
	e := engine.New(settings(8), nil)

	res := e.Compute(model.Snapshot{ScheduleEntries: []model.ScheduleEntry{todayCell("10:00")}}, now)
	if res.Today.RemainingTime != 0 {
		t.Errorf("RemainingTime = %v, want 0", res.Today.RemainingTime)
	}
	if res.Today.HasEstimate {
		t.Error("HasEstimate = true, want false")
	}
	if got := res.Today.EstimatedEndText(); got != engine.NoEstimate {
		t.Errorf("EstimatedEndText = %q, want %q", got, engine.NoEstimate)
	}
}

func TestComputeWeekOvertime(t *testing.T) {
	e := engine.New(settings(8), nil)

	var cells []model.ScheduleEntry
	for _, label := range []string{"lundi 02/03/2026", "mardi 03/03/2026", "jeudi 05/03/2026", "vendredi 06/03/2026", "samedi 07/03/2026"} {
		cells = append(cells, model.ScheduleEntry{Label: label, Content: "Temps traité: 8:24"})
	}

	res := e.Compute(model.Snapshot{ScheduleEntries: cells}, now)
	if res.Today.TotalWorkedThisWeek != 42*time.Hour {
		t.Fatalf("TotalWorkedThisWeek = %v, want 42h", res.Today.TotalWorkedThisWeek)
	}
	if res.Week.RemainingTime != -2*time.Hour {
		t.Errorf("Week.RemainingTime = %v, want -2h", res.Week.RemainingTime)
	}
	if !res.Week.IsOvertime {
		t.Error("IsOvertime = false, want true")
	}
	if res.Week.TotalWorked != 42*time.Hour {
		t.Errorf("Week.TotalWorked = %v", res.Week.TotalWorked)
	}
}

func TestComputeCombinesSourcesAndLunchCredit(t *testing.T) {
	e := engine.New(settings(8), nil)
	at := time.Date(2026, 3, 4, 16, 0, 0, 0, time.UTC)

	snap := model.Snapshot{
		ScheduleEntries: []model.ScheduleEntry{
			{Label: "mardi 03/03/2026", Content: "Temps traité: 8:00"},
		},
		// 08:00-11:10 shares 10 minutes with the lunch window; 11:30 is
		// still open at 16:00.
		PunchTexts: []string{"Horodatage 08:00", "Horodatage 11:10", "Horodatage 11:30"},
	}

	res := e.Compute(snap, at)
	worked := 3*time.Hour + 10*time.Minute + 4*time.Hour + 30*time.Minute
	if res.Today.TotalWorked != worked {
		t.Errorf("TotalWorked = %v, want %v", res.Today.TotalWorked, worked)
	}
	if res.Today.TotalWorkedThisWeek != worked+8*time.Hour {
		t.Errorf("TotalWorkedThisWeek = %v", res.Today.TotalWorkedThisWeek)
	}
	if res.Today.PauseDetected || res.Today.PauseAdded != 20*time.Minute {
		t.Errorf("pause = %v/%v, want false/20m", res.Today.PauseDetected, res.Today.PauseAdded)
	}
	if want := 40 * time.Minute; res.Today.RemainingTime != want {
		t.Errorf("RemainingTime = %v, want %v", res.Today.RemainingTime, want)
	}
}

func TestComputeSpecPunchesWithLunch(t *testing.T) {
	e := engine.New(settings(8.4), nil)
	at := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)

	res := e.Compute(model.Snapshot{PunchTexts: []string{"08:00", "12:00", "13:00", "17:00"}}, at)
	if res.Today.TotalWorked != 8*time.Hour {
		t.Errorf("TotalWorked = %v, want 8h", res.Today.TotalWorked)
	}
	if !res.Today.PauseDetected || res.Today.PauseAdded != 0 {
		t.Errorf("pause = %v/%v, want true/0", res.Today.PauseDetected, res.Today.PauseAdded)
	}
	if res.Today.RemainingTime != 24*time.Minute {
		t.Errorf("RemainingTime = %v, want 24m", res.Today.RemainingTime)
	}
}

func TestComputeInvalidLunchPolicy(t *testing.T) {
	s := settings(8)
	s.Lunch = lunch.Policy{StartHour: 12, EndHour: 12, MinimumDurationMinutes: 30}
	e := engine.New(s, nil)

	at := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)
	res := e.Compute(model.Snapshot{PunchTexts: []string{"08:00", "12:00", "13:00", "17:00"}}, at)
	if res.Today.PauseDetected || res.Today.PauseAdded != 0 {
		t.Errorf("pause = %v/%v, want no adjustment", res.Today.PauseDetected, res.Today.PauseAdded)
	}
	if res.Today.TotalWorked != 8*time.Hour {
		t.Errorf("TotalWorked = %v, want 8h", res.Today.TotalWorked)
	}
}

func TestComputeMalformedSnapshot(t *testing.T) {
	e := engine.New(settings(8), nil)
	snap := model.Snapshot{
		ScheduleEntries: []model.ScheduleEntry{{Label: "???", Content: "Temps traité: xx"}},
		PunchTexts:      []string{"", "garbage"},
	}
	res := e.Compute(snap, now)
	if res.Today.TotalWorked != 0 || res.Week.TotalWorked != 0 {
		t.Errorf("malformed snapshot produced %+v", res.Today)
	}
	if res.Today.RemainingTime != 8*time.Hour {
		t.Errorf("RemainingTime = %v, want 8h", res.Today.RemainingTime)
	}
	if res.Week.RemainingTime != 40*time.Hour || res.Week.IsOvertime {
		t.Errorf("Week = %+v", res.Week)
	}
}

func TestTargets(t *testing.T) {
	e := engine.New(settings(8.4), nil)
	if e.DayTarget() != 8*time.Hour+24*time.Minute {
		t.Errorf("DayTarget = %v", e.DayTarget())
	}
	if e.WeekTarget() != 42*time.Hour {
		t.Errorf("WeekTarget = %v", e.WeekTarget())
	}
}

func TestComputeLogsDebugSummary(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e := engine.New(settings(8), logger)
	e.Compute(model.Snapshot{ScheduleEntries: []model.ScheduleEntry{todayCell("6:00")}}, now)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry written")
	}
	if entry.Level != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", entry.Level)
	}
	if entry.Data["worked_hours"] != 6.0 || entry.Data["estimated_end"] != "16:00" {
		t.Errorf("fields = %v", entry.Data)
	}
}
