package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/i18n"
	"github.com/Tiliavir/time-manager/internal/report"
)

// Refresher runs one full pass against the page source.
type Refresher func(ctx context.Context) (engine.Result, error)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0"))

	remainingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	overtimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

// Model is the live dashboard behind "tm watch".
type Model struct {
	ctx        context.Context
	refresh    Refresher
	tr         i18n.Strings
	dailyHours float64
	interval   time.Duration

	result     engine.Result
	loaded     bool
	loading    bool
	passes     int
	statusLine string
	errorLine  string
}

type tickMsg time.Time

type resultMsg struct {
	result engine.Result
	err    error
}

// NewModel returns a dashboard that recomputes every interval.
func NewModel(ctx context.Context, refresh Refresher, tr i18n.Strings, dailyHours float64, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Minute
	}
	return Model{
		ctx:        ctx,
		refresh:    refresh,
		tr:         tr,
		dailyHours: dailyHours,
		interval:   interval,
		loading:    true,
		statusLine: "Loading...",
	}
}

// Init runs the first pass and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.computeCmd(), m.tickCmd())
}

// Update handles keys, timer ticks and finished passes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m.reload()
		}
		return m, nil
	case tickMsg:
		next, cmd := m.reload()
		return next, tea.Batch(cmd, m.tickCmd())
	case resultMsg:
		return m.handleResult(msg), nil
	default:
		return m, nil
	}
}

func (m Model) reload() (Model, tea.Cmd) {
	if m.loading && m.loaded {
		return m, nil
	}
	m.loading = true
	m.statusLine = "Refreshing..."
	return m, m.computeCmd()
}

func (m Model) handleResult(msg resultMsg) Model {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Refresh failed: %v", msg.err)
		m.statusLine = ""
		return m
	}
	m.result = msg.result
	m.loaded = true
	m.passes++
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Updated at %s.", msg.result.Now.Format("15:04:05"))
	return m
}

func (m Model) computeCmd() tea.Cmd {
	refresh := m.refresh
	ctx := m.ctx
	return func() tea.Msg {
		res, err := refresh(ctx)
		return resultMsg{result: res, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tm watch"))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("Loading...\n")
	} else {
		rows := report.Rows(m.result, m.tr, m.dailyHours)
		width := 0
		for _, r := range rows {
			width = max(width, lipgloss.Width(r.Label))
		}
		lines := make([]string, 0, len(rows))
		for i, r := range rows {
			label := labelStyle.Width(width + 2).Render(r.Label)
			lines = append(lines, label+m.valueStyle(i).Render(r.Value))
		}
		b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
		b.WriteByte('\n')
	}

	if m.errorLine != "" {
		b.WriteString("\n! ")
		b.WriteString(m.errorLine)
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Refresh every %s  r refresh now  q quit", m.interval)
	b.WriteByte('\n')
	return b.String()
}

// valueStyle colours the remaining-time row and the weekly balance row.
func (m Model) valueStyle(row int) lipgloss.Style {
	switch row {
	case 1:
		return remainingStyle
	case 5:
		if m.result.Week.IsOvertime {
			return overtimeStyle
		}
		return remainingStyle
	default:
		return lipgloss.NewStyle()
	}
}
