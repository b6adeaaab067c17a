package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/time-manager/internal/config"
	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/model"
)

// BaseDir returns the root data directory (~/.tm unless TM_HOME is set).
func BaseDir() (string, error) {
	return config.HomeDir()
}

// dayFilePath returns the path for the given date's JSON file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: t.Format("2006-01-02")}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	path := dayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Summarize converts a pass result into the record kept for its day.
func Summarize(res engine.Result, source string) model.DaySummary {
	s := model.DaySummary{
		Date:                 res.Now.Format("2006-01-02"),
		ComputedAt:           res.Now,
		WorkedSeconds:        int64(res.Today.TotalWorked.Seconds()),
		WeekWorkedSeconds:    int64(res.Today.TotalWorkedThisWeek.Seconds()),
		RemainingSeconds:     int64(res.Today.RemainingTime.Seconds()),
		WeekRemainingSeconds: int64(res.Week.RemainingTime.Seconds()),
		PauseDetected:        res.Today.PauseDetected,
		PauseAddedSeconds:    int64(res.Today.PauseAdded.Seconds()),
		Overtime:             res.Week.IsOvertime,
		Source:               source,
	}
	if res.Today.HasEstimate {
		end := res.Today.EstimatedEndText()
		s.EstimatedEnd = &end
	}
	return s
}

// RecordSummary stores s as the latest result of its day and counts the pass.
func RecordSummary(base string, day time.Time, s model.DaySummary) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	df.Date = day.Format("2006-01-02")
	df.Summary = &s
	df.Passes++
	return SaveDay(base, day, df)
}

// LoadRange returns the recorded summaries in [from, to] inclusive, oldest
// first. Days without a record are skipped.
func LoadRange(base string, from, to time.Time) ([]model.DaySummary, error) {
	var summaries []model.DaySummary
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		if df.Summary != nil {
			summaries = append(summaries, *df.Summary)
		}
	}
	return summaries, nil
}
