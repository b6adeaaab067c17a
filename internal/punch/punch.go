// Package punch pairs clock-in/clock-out markers into worked intervals.
package punch

import (
	"time"

	"github.com/Tiliavir/time-manager/internal/timecalc"
)

// Punch is one marker of the event timeline. Valid is false when the marker
// text carried no readable time.
type Punch struct {
	Text  string
	At    time.Time
	Valid bool
}

// Interval is a worked span. Open intervals end at the pass's "now".
type Interval struct {
	Start time.Time
	End   time.Time
	Open  bool
}

// Duration returns End - Start, unclamped.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Totals is the worked time read from the punches. Punches are assumed to be
// from the current day only, so Today and Week are equal.
type Totals struct {
	Today time.Duration
	Week  time.Duration
}

// Parse anchors every text to the date of now. The result has the same length
// and order as texts; unreadable entries stay in place as invalid punches.
func Parse(texts []string, now time.Time) []Punch {
	punches := make([]Punch, len(texts))
	for i, text := range texts {
		at, ok := timecalc.ParseClock(text, now)
		punches[i] = Punch{Text: text, At: at, Valid: ok}
	}
	return punches
}

// Pairs returns the closed intervals (i-1, i) for odd i where both punches
// are valid. A pair with an invalid side is dropped without shifting the
// pairing of the following punches.
func Pairs(punches []Punch) []Interval {
	var out []Interval
	for i := 1; i < len(punches); i += 2 {
		start, end := punches[i-1], punches[i]
		if !start.Valid || !end.Valid {
			continue
		}
		out = append(out, Interval{Start: start.At, End: end.At})
	}
	return out
}

// Trailing returns the open interval of an unpaired last punch, if any.
func Trailing(punches []Punch, now time.Time) (Interval, bool) {
	if len(punches)%2 == 0 {
		return Interval{}, false
	}
	last := punches[len(punches)-1]
	if !last.Valid {
		return Interval{}, false
	}
	return Interval{Start: last.At, End: now, Open: true}, true
}

// Intervals returns the closed pairs followed by the trailing open interval.
func Intervals(punches []Punch, now time.Time) []Interval {
	out := Pairs(punches)
	if open, ok := Trailing(punches, now); ok {
		out = append(out, open)
	}
	return out
}

// Sum adds up every interval, treating an unpaired last punch as still
// clocked in.
func Sum(punches []Punch, now time.Time) Totals {
	var t Totals
	for _, iv := range Intervals(punches, now) {
		d := iv.Duration()
		t.Today += d
		t.Week += d
	}
	return t
}
