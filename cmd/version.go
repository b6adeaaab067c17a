package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tm %s\n", version.Info())
			return nil
		},
	}
}
