package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-manager/internal/portal"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to the portal with the device code flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := portal.TokenPath()
			if err != nil {
				return err
			}
			tok, err := portal.Login(cmd.Context(), a.cfg.Portal, path, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in; token valid until %s.\n", tok.Expiry.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
