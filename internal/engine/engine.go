// Package engine reconciles the scheduler and punch readings of one page
// snapshot into today's and this week's work-time figures.
package engine

import (
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/time-manager/internal/lunch"
	"github.com/Tiliavir/time-manager/internal/model"
	"github.com/Tiliavir/time-manager/internal/punch"
	"github.com/Tiliavir/time-manager/internal/schedule"
	"github.com/Tiliavir/time-manager/internal/timecalc"
)

// NoEstimate is shown instead of an end time once the daily target is met.
const NoEstimate = "—"

// Settings is the part of the configuration the computation depends on.
type Settings struct {
	DailyHours         float64
	WorkingDaysPerWeek int
	Lunch              lunch.Policy
	// Language selects how scheduler labels are read.
	Language string
}

// Today is the result for the current day.
type Today struct {
	TotalWorked         time.Duration
	TotalWorkedThisWeek time.Duration
	// RemainingTime never goes below zero.
	RemainingTime time.Duration
	EstimatedEnd  time.Time
	HasEstimate   bool
	PauseDetected bool
	PauseAdded    time.Duration
}

// EstimatedEndText renders the end time as "15:04", or NoEstimate.
func (t Today) EstimatedEndText() string {
	if !t.HasEstimate {
		return NoEstimate
	}
	return timecalc.FormatClock(t.EstimatedEnd)
}

// Week is the result for the current week. RemainingTime is negative when
// the weekly target is exceeded.
type Week struct {
	TotalWorked   time.Duration
	RemainingTime time.Duration
	IsOvertime    bool
}

// Result is everything one pass produced.
type Result struct {
	Now      time.Time
	Today    Today
	Week     Week
	Schedule schedule.Totals
	Punches  punch.Totals
	Lunch    lunch.Adjustment
}

// Engine computes results for a fixed configuration. It holds no state
// between passes; every call recomputes from the snapshot it is given.
type Engine struct {
	settings Settings
	schedule *schedule.Aggregator
	log      logrus.FieldLogger
}

// New returns an Engine. A nil logger discards output.
func New(s Settings, log logrus.FieldLogger) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{
		settings: s,
		schedule: schedule.New(s.Language),
		log:      log,
	}
}

// Settings returns the configuration the engine was built with.
func (e *Engine) Settings() Settings {
	return e.settings
}

// DayTarget is the daily target as a duration.
func (e *Engine) DayTarget() time.Duration {
	return timecalc.HoursToDuration(e.settings.DailyHours)
}

// WeekTarget is the daily target times the working days.
func (e *Engine) WeekTarget() time.Duration {
	return timecalc.HoursToDuration(e.settings.DailyHours * float64(e.settings.WorkingDaysPerWeek))
}

// Compute runs one full pass. now is sampled once by the caller and used for
// every calculation of the pass. Malformed snapshot text never fails the pass;
// it only contributes nothing.
func (e *Engine) Compute(snap model.Snapshot, now time.Time) Result {
	sched := e.schedule.Sum(snap.ScheduleEntries, now)
	punches := punch.Parse(snap.PunchTexts, now)
	worked := punch.Sum(punches, now)
	adj := lunch.Adjust(punch.Pairs(punches), e.settings.Lunch, now)

	today := e.today(sched, worked, adj, now)
	week := e.Week(today)

	e.log.WithFields(logrus.Fields{
		"worked_hours":    round2(today.TotalWorked.Hours()),
		"remaining_hours": round2(today.RemainingTime.Hours()),
		"estimated_end":   today.EstimatedEndText(),
		"pause_detected":  today.PauseDetected,
		"pause_added":     today.PauseAdded,
		"week_remaining":  week.RemainingTime,
		"punches":         len(punches),
		"schedule_days":   len(snap.ScheduleEntries),
	}).Debug("Time calculation")

	return Result{
		Now:      now,
		Today:    today,
		Week:     week,
		Schedule: sched,
		Punches:  worked,
		Lunch:    adj,
	}
}

func (e *Engine) today(sched schedule.Totals, worked punch.Totals, adj lunch.Adjustment, now time.Time) Today {
	t := Today{
		TotalWorked:         sched.Today + worked.Today,
		TotalWorkedThisWeek: sched.Week + worked.Week,
		PauseDetected:       adj.PauseDetected,
		PauseAdded:          adj.PauseAdded,
	}
	remaining := e.DayTarget() - t.TotalWorked + adj.PauseAdded
	if remaining > 0 {
		t.RemainingTime = remaining
		t.EstimatedEnd = now.Add(remaining)
		t.HasEstimate = true
	}
	return t
}

// Week derives the weekly figures from a day result.
func (e *Engine) Week(today Today) Week {
	remaining := e.WeekTarget() - today.TotalWorkedThisWeek
	return Week{
		TotalWorked:   today.TotalWorkedThisWeek,
		RemainingTime: remaining,
		IsOvertime:    remaining < 0,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
