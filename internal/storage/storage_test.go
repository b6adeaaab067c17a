package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/model"
	"github.com/Tiliavir/time-manager/internal/storage"
)

func TestLoadDayNotExist(t *testing.T) {
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	df, err := storage.LoadDay(base, day)
	if err != nil {
		t.Fatalf("LoadDay on missing file: %v", err)
	}
	if df.Date != "2026-02-27" {
		t.Errorf("LoadDay date = %q, want %q", df.Date, "2026-02-27")
	}
	if df.Summary != nil || df.Passes != 0 {
		t.Errorf("LoadDay = %+v, want empty", df)
	}
}

func TestSaveDayAndLoadDay(t *testing.T) {
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	df := model.DayFile{
		Date:    "2026-02-27",
		Summary: &model.DaySummary{Date: "2026-02-27", WorkedSeconds: 3600, Source: "page"},
		Passes:  2,
	}
	if err := storage.SaveDay(base, day, df); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "2026", "02", "27.json")); err != nil {
		t.Fatalf("day file not written: %v", err)
	}

	loaded, err := storage.LoadDay(base, day)
	if err != nil {
		t.Fatalf("LoadDay after save: %v", err)
	}
	if loaded.Summary == nil || loaded.Summary.WorkedSeconds != 3600 || loaded.Passes != 2 {
		t.Errorf("LoadDay = %+v", loaded)
	}
}

func TestLoadDayCorruptIsBackedUp(t *testing.T) {
	base := t.TempDir()
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	path := base + "/2026/02/27.json"
	if err := os.MkdirAll(base+"/2026/02", 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := storage.LoadDay(base, day)
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}
	if _, err2 := os.Stat(path + ".corrupt"); os.IsNotExist(err2) {
		t.Error("expected backup file to exist after corrupt JSON")
	}
}

func sampleResult(now time.Time) engine.Result {
	return engine.Result{
		Now: now,
		Today: engine.Today{
			TotalWorked:         6 * time.Hour,
			TotalWorkedThisWeek: 30 * time.Hour,
			RemainingTime:       2 * time.Hour,
			EstimatedEnd:        now.Add(2 * time.Hour),
			HasEstimate:         true,
			PauseAdded:          10 * time.Minute,
		},
		Week: engine.Week{TotalWorked: 30 * time.Hour, RemainingTime: 10 * time.Hour},
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)
	s := storage.Summarize(sampleResult(now), "page")
	if s.Date != "2026-03-04" || s.WorkedSeconds != 6*3600 || s.RemainingSeconds != 2*3600 {
		t.Errorf("Summarize = %+v", s)
	}
	if s.EstimatedEnd == nil || *s.EstimatedEnd != "16:00" {
		t.Errorf("EstimatedEnd = %v", s.EstimatedEnd)
	}
	if s.PauseAddedSeconds != 600 || s.Overtime || s.Source != "page" {
		t.Errorf("Summarize = %+v", s)
	}

	done := sampleResult(now)
	done.Today.HasEstimate = false
	if got := storage.Summarize(done, "page"); got.EstimatedEnd != nil {
		t.Errorf("EstimatedEnd = %q, want nil", *got.EstimatedEnd)
	}
}

func TestRecordSummaryAndLoadRange(t *testing.T) {
	base := t.TempDir()
	mon := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	wed := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{mon, wed, wed.Add(time.Hour)} {
		if err := storage.RecordSummary(base, at, storage.Summarize(sampleResult(at), "page")); err != nil {
			t.Fatalf("RecordSummary: %v", err)
		}
	}

	df, err := storage.LoadDay(base, wed)
	if err != nil {
		t.Fatal(err)
	}
	if df.Passes != 2 || !df.Summary.ComputedAt.Equal(wed.Add(time.Hour)) {
		t.Errorf("Wednesday = passes %d, computed %v", df.Passes, df.Summary.ComputedAt)
	}

	got, err := storage.LoadRange(base, mon, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LoadRange: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2026-03-02" || got[1].Date != "2026-03-04" {
		t.Errorf("LoadRange = %+v", got)
	}
}

func TestBaseDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TM_HOME", dir)
	got, err := storage.BaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("BaseDir = %q, want %q", got, dir)
	}
}
