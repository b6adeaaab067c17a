package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/page"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		out     string
		overlay bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the portal page with the summary rows and cleanups applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, doc, _, err := a.compute(cmd.Context())
			if err != nil {
				return err
			}
			tr := a.tr()

			removed := doc.RemoveRows(a.cfg.RowsToRemove)
			converted := doc.ConvertRowsToDays(a.cfg.RowsToConvertToDays, a.cfg.DailyWorkHours, tr.DaysLabel)
			colored := doc.ColorSchedulerDiffs()
			a.log.WithFields(logrus.Fields{
				"removed":   removed,
				"converted": converted,
				"colored":   colored,
			}).Info("Page cleaned up")

			if overlay {
				err = doc.RenderOverlay(res, tr, a.cfg.DailyWorkHours)
			} else if err = doc.RenderSummary(res, tr, a.cfg.DailyWorkHours); errors.Is(err, page.ErrTableNotFound) {
				a.log.Warn("Summary table not found, adding an overlay instead")
				err = doc.RenderOverlay(res, tr, a.cfg.DailyWorkHours)
			}
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), out, doc)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file (- for stdout)")
	cmd.Flags().BoolVar(&overlay, "overlay", false, "Show the summary in a floating panel instead of the table")
	return cmd
}

func writeOutput(stdout io.Writer, path string, doc *page.Document) error {
	if path == "" || path == "-" {
		return doc.Write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := doc.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
