// Package schedule sums the "processed time" reported by the scheduler
// widget, one cell per calendar day.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/time-manager/internal/model"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

var (
	processedPattern = regexp.MustCompile(`(?i)(?:Temps trait[ée]|Processed time|Bearbeitete Zeit)\s*:\s*(\d{1,2}:\d{2})`)
	numericDate      = regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})[./](\d{4})\b`)
	isoDate          = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

var weekdayNames = map[string][7]string{
	"fr": {"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	"de": {"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

// Totals is the processed time of the current day and of the whole week.
type Totals struct {
	Today time.Duration
	Week  time.Duration
}

// Day is one scheduler cell after parsing.
type Day struct {
	Label     string
	Date      time.Time
	HasDate   bool
	Processed time.Duration
	Matched   bool
}

// Aggregator reads scheduler cells written in the portal's language.
type Aggregator struct {
	lang string
}

// New returns an Aggregator for lang ("fr", "en" or "de"). Unknown languages
// fall back to "fr", the portal's default.
func New(lang string) *Aggregator {
	if _, ok := weekdayNames[lang]; !ok {
		lang = "fr"
	}
	return &Aggregator{lang: lang}
}

// Parse extracts the processed time and, when present, the calendar date of a
// cell. Cells without a processed-time line are returned with Matched false.
func (a *Aggregator) Parse(e model.ScheduleEntry, loc *time.Location) Day {
	d := Day{Label: strings.TrimSpace(e.Label)}
	if m := processedPattern.FindStringSubmatch(e.Content); m != nil {
		d.Processed = timecalc.ParseDuration(m[1])
		d.Matched = true
	}
	d.Date, d.HasDate = a.labelDate(d.Label, loc)
	return d
}

// Sum adds every matched cell to the week and the cells dated now to today.
func (a *Aggregator) Sum(entries []model.ScheduleEntry, now time.Time) Totals {
	var t Totals
	for _, e := range entries {
		d := a.Parse(e, now.Location())
		if !d.Matched {
			continue
		}
		t.Week += d.Processed
		if a.isToday(d, now) {
			t.Today += d.Processed
		}
	}
	return t
}

func (a *Aggregator) isToday(d Day, now time.Time) bool {
	if d.HasDate {
		return timecalc.SameDay(d.Date, now)
	}
	// Unstructured label: a label embedding another day's text could match
	// as well.
	return d.Label != "" && strings.Contains(d.Label, a.FormatDate(now))
}

// FormatDate renders t the way the portal labels a day: long weekday and
// numeric date, e.g. "mardi 03/03/2026", "Tuesday, 03/03/2026",
// "Dienstag, 03.03.2026".
func (a *Aggregator) FormatDate(t time.Time) string {
	name := weekdayNames[a.lang][t.Weekday()]
	switch a.lang {
	case "de":
		return name + ", " + t.Format("02.01.2006")
	case "en":
		return name + ", " + t.Format("01/02/2006")
	default:
		return name + " " + t.Format("02/01/2006")
	}
}

func (a *Aggregator) labelDate(label string, loc *time.Location) (time.Time, bool) {
	if m := isoDate.FindStringSubmatch(label); m != nil {
		return buildDate(m[1], m[2], m[3], loc)
	}
	m := numericDate.FindStringSubmatch(label)
	if m == nil {
		return time.Time{}, false
	}
	if a.lang == "en" && strings.Contains(m[0], "/") {
		return buildDate(m[3], m[1], m[2], loc)
	}
	return buildDate(m[3], m[2], m[1], loc)
}

func buildDate(year, month, day string, loc *time.Location) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
