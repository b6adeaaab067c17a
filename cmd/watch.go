package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/engine"
	"github.com/Tiliavir/time-manager/internal/ui"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard, recomputed every refresh_seconds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would tear the dashboard apart.
			a.log.SetOutput(io.Discard)

			refresh := func(ctx context.Context) (engine.Result, error) {
				res, _, _, err := a.compute(ctx)
				return res, err
			}
			interval := time.Duration(a.cfg.RefreshSeconds) * time.Second
			m := ui.NewModel(cmd.Context(), refresh, a.tr(), a.cfg.DailyWorkHours, interval)

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
	}
}
