package model

import "time"

// DaySummary is the last computed result recorded for a calendar day.
type DaySummary struct {
	Date                 string    `json:"date"`
	ComputedAt           time.Time `json:"computed_at"`
	WorkedSeconds        int64     `json:"worked_seconds"`
	WeekWorkedSeconds    int64     `json:"week_worked_seconds"`
	RemainingSeconds     int64     `json:"remaining_seconds"`
	WeekRemainingSeconds int64     `json:"week_remaining_seconds"`
	EstimatedEnd         *string   `json:"estimated_end"`
	PauseDetected        bool      `json:"pause_detected"`
	PauseAddedSeconds    int64     `json:"pause_added_seconds"`
	Overtime             bool      `json:"overtime"`
	Source               string    `json:"source"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date    string      `json:"date"`
	Summary *DaySummary `json:"summary"`
	Passes  int         `json:"passes"`
}
