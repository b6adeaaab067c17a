package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/config"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool
	pagePath   string
	url        string

	cfg config.Config
	log *logrus.Logger
	now func() time.Time
}

func newApp() *app {
	return &app{now: time.Now}
}

// newRootCommand builds the command tree around a.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tm",
		Short: "Time Manager: work-time figures from the attendance portal",
		Long: `tm reads the attendance portal page (saved to disk or fetched live),
adds up processed time and punches, credits a missing lunch break and shows
what is left to work today and this week.
Settings live in ~/.tm/config.json; daily summaries in ~/.tm/YYYY/MM/DD.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup(cmd)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (.json, .yaml or .toml; default ~/.tm/config.json)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log calculation details")
	flags.StringVar(&a.pagePath, "page", "", "Saved portal page to read")
	flags.StringVar(&a.url, "url", "", "Portal page to fetch (default portal.url from the config)")

	rootCmd.AddCommand(
		newTodayCmd(a),
		newWeekCmd(a),
		newWatchCmd(a),
		newRenderCmd(a),
		newCalcCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newLoginCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup builds the logger and loads the configuration. An unreadable or
// invalid config is reported and replaced by the defaults.
func (a *app) setup(cmd *cobra.Command) {
	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	a.log.SetLevel(logrus.InfoLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			a.log.WithError(err).Warn("Invalid configuration, using defaults")
		} else {
			a.log.WithError(err).Warn("Could not load configuration, using defaults")
		}
	}
	a.cfg = cfg
	a.log.WithFields(logrus.Fields{
		"daily_hours":   cfg.DailyWorkHours,
		"working_days":  cfg.WorkingDaysPerWeek,
		"language":      cfg.Language,
		"lunch_start":   cfg.LunchBreak.StartHour,
		"lunch_end":     cfg.LunchBreak.EndHour,
		"lunch_minimum": cfg.LunchBreak.MinimumDurationMinutes,
	}).Debug("Configuration loaded")
}

// Execute is the entry point called from main.
func Execute() {
	ctx := context.Background()
	if err := newRootCommand(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
