package timecalc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AbsentMarker is what the portal prints in a cell that has no time value.
const AbsentMarker = "-"

var (
	durationPattern = regexp.MustCompile(`^([+-])?(\d{1,2}):(\d{2})$`)
	hoursPattern    = regexp.MustCompile(`^([+-])?(\d+)(?::(\d{2}))?$`)
	clockPattern    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ParseDuration converts "H:MM" (optionally signed, "+1:05", "-0:30") into a
// duration. Empty text, the absence marker and anything that does not match
// yield zero.
func ParseDuration(text string) time.Duration {
	text = strings.TrimSpace(text)
	if text == "" || text == AbsentMarker {
		return 0
	}
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[2])
	min, _ := strconv.Atoi(m[3])
	d := time.Duration(h)*time.Hour + time.Duration(min)*time.Minute
	if m[1] == "-" {
		return -d
	}
	return d
}

// ParseHours converts "H:MM" into decimal hours. A bare hour count ("3") is
// accepted as well; unmatched text yields 0.
func ParseHours(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == AbsentMarker {
		return 0
	}
	m := hoursPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[2])
	hours := float64(h)
	if m[3] != "" {
		min, _ := strconv.Atoi(m[3])
		hours += float64(min) / 60
	}
	if m[1] == "-" {
		return -hours
	}
	return hours
}

// ParseClock extracts the first "H:MM" found in free text and anchors it to
// the calendar date of day. The boolean is false when no valid clock time is
// present, so callers can tell "no time" apart from midnight.
func ParseClock(text string, day time.Time) (time.Time, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, min, 0, 0, day.Location()), true
}

// FormatHours renders decimal hours as "H:MM", rounded to the nearest minute.
// No sign is rendered; callers pass the absolute value.
func FormatHours(hours float64) string {
	total := int64(math.Round(math.Abs(hours) * 60))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration renders d as "H:MM".
func FormatDuration(d time.Duration) string {
	return FormatHours(d.Hours())
}

// FormatClock renders the time of day as "15:04".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// HoursToDays converts hours into working days of dailyHours, rounded to two
// decimals.
func HoursToDays(hours, dailyHours float64) float64 {
	if dailyHours <= 0 {
		return 0
	}
	return math.Round(hours/dailyHours*100) / 100
}

// HoursToDuration converts decimal hours to a whole-second duration.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	return monday, EndOfDay(monday.AddDate(0, 0, 6))
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
