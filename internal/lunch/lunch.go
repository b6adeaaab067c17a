// Package lunch credits back the part of a mandatory lunch break that the
// punches do not show.
package lunch

import (
	"time"

	"github.com/Tiliavir/time-manager/internal/punch"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

// MaxMinimumMinutes bounds Policy.MinimumDurationMinutes.
const MaxMinimumMinutes = 240

// Policy is the configured lunch window and the minimum break it requires.
type Policy struct {
	StartHour              int
	EndHour                int
	MinimumDurationMinutes int
}

// Valid reports whether p describes a usable window.
func (p Policy) Valid() bool {
	return p.StartHour >= 0 && p.EndHour <= 24 && p.StartHour < p.EndHour &&
		p.MinimumDurationMinutes >= 0 && p.MinimumDurationMinutes <= MaxMinimumMinutes
}

// Window returns the lunch window on the calendar day of day.
func (p Policy) Window(day time.Time) (time.Time, time.Time) {
	start := timecalc.StartOfDay(day)
	return start.Add(time.Duration(p.StartHour) * time.Hour), start.Add(time.Duration(p.EndHour) * time.Hour)
}

func (p Policy) minimum() time.Duration {
	return time.Duration(p.MinimumDurationMinutes) * time.Minute
}

// Adjustment is the outcome of one lunch check.
type Adjustment struct {
	PauseDetected bool
	PauseAdded    time.Duration
	// Overlap is the time the candidate interval shares with the window.
	Overlap time.Duration
	// Candidate is the interval that was measured, nil if none qualified.
	Candidate *punch.Interval
}

// Adjust picks the first closed interval that starts today and touches the
// lunch window (by hour), and measures its overlap with the window. Only that
// interval is ever considered. An overlap shorter than the policy minimum is
// credited back as PauseAdded. An invalid policy yields no adjustment.
func Adjust(intervals []punch.Interval, p Policy, now time.Time) Adjustment {
	if !p.Valid() {
		return Adjustment{}
	}
	for i := range intervals {
		iv := intervals[i]
		if iv.Open || !spansLunch(iv, p, now) {
			continue
		}
		overlap := Overlap(iv, p)
		adj := Adjustment{Overlap: overlap, Candidate: &iv}
		if overlap >= p.minimum() {
			adj.PauseDetected = true
		} else {
			adj.PauseAdded = p.minimum() - overlap
		}
		return adj
	}
	return Adjustment{}
}

// Overlap returns the non-negative time iv shares with the lunch window of its
// start day.
func Overlap(iv punch.Interval, p Policy) time.Duration {
	winStart, winEnd := p.Window(iv.Start)
	start := iv.Start
	if winStart.After(start) {
		start = winStart
	}
	end := iv.End
	if winEnd.Before(end) {
		end = winEnd
	}
	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}

func spansLunch(iv punch.Interval, p Policy, now time.Time) bool {
	return timecalc.SameDay(iv.Start, now) &&
		iv.Start.Hour() <= p.EndHour &&
		iv.End.Hour() >= p.StartHour
}
