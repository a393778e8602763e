package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd(newSDK sdkFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Delete files on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := parseRemotes(args)
			if err != nil {
				return err
			}
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			if err := sdk.Delete(cmd.Context(), paths...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d file(s)\n", len(paths))
			return nil
		},
	}
}
