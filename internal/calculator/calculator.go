// Package calculator works out worked time from hand-typed day entries such
// as "08:00-17:00/0:45" and totals them against a weekly target.
package calculator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Tiliavir/time-manager/internal/timecalc"
)

// ErrInvalidEntry is returned for entries that cannot be read.
var ErrInvalidEntry = errors.New("invalid entry")

var (
	spanPattern  = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})(?:\s*/\s*(\d{1,2}:\d{2}))?$`)
	totalPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// Entry is one day. Either Start/End (with an optional Pause) are set, or
// only Total for a day typed as a plain "H:MM".
type Entry struct {
	Start time.Duration
	End   time.Duration
	Pause time.Duration
	Total time.Duration
	Span  bool
}

// ParseEntry reads "HH:MM-HH:MM", "HH:MM-HH:MM/H:MM" (with a pause) or a
// plain "H:MM" total.
func ParseEntry(text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if totalPattern.MatchString(text) {
		return Entry{Total: timecalc.ParseDuration(text)}, nil
	}

	m := spanPattern.FindStringSubmatch(text)
	if m == nil {
		return Entry{}, fmt.Errorf("%w %q: want HH:MM-HH:MM[/H:MM] or H:MM", ErrInvalidEntry, text)
	}
	start, err := clock(m[1])
	if err != nil {
		return Entry{}, err
	}
	end, err := clock(m[2])
	if err != nil {
		return Entry{}, err
	}
	if end < start {
		return Entry{}, fmt.Errorf("%w %q: end before start", ErrInvalidEntry, text)
	}
	e := Entry{Start: start, End: end, Span: true}
	if m[3] != "" {
		e.Pause = timecalc.ParseDuration(m[3])
	}
	return e, nil
}

func clock(text string) (time.Duration, error) {
	t, ok := timecalc.ParseClock(text, time.Time{})
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a time of day", ErrInvalidEntry, text)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Worked returns the time worked, never below zero.
func (e Entry) Worked() time.Duration {
	if !e.Span {
		return e.Total
	}
	if d := e.End - e.Start - e.Pause; d > 0 {
		return d
	}
	return 0
}

// Summary totals a set of entries against a target.
type Summary struct {
	Days  []time.Duration
	Total time.Duration
	// Remaining is negative once the target is exceeded.
	Remaining  time.Duration
	IsOvertime bool
}

// Week sums the entries and compares them with target.
func Week(entries []Entry, target time.Duration) Summary {
	s := Summary{Days: make([]time.Duration, 0, len(entries))}
	for _, e := range entries {
		w := e.Worked()
		s.Days = append(s.Days, w)
		s.Total += w
	}
	s.Remaining = target - s.Total
	s.IsOvertime = s.Remaining < 0
	return s
}
