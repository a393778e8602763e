package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vauradkar/letso/internal/version"
)

func newVersionCmd(newSDK sdkFactory) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print Letso version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, version.Detailed()); err != nil {
				return err
			}
			if !remote {
				return nil
			}

			sdk, err := newSDK()
			if err != nil {
				return err
			}
			serverVersion, err := sdk.ServerVersion(cmd.Context())
			if err != nil {
				return err
			}
			apiVersion, err := sdk.APIVersion(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "server %s (api %s)\n", serverVersion, apiVersion)
			return err
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Also query the server version")
	return cmd
}
