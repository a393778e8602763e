package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vauradkar/letso/internal/pfs"
)

func newLsCmd(newSDK sdkFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory on the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseRemote(optionalArg(args))
			if err != nil {
				return err
			}
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			listing, err := sdk.Browse(cmd.Context(), dir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, entry := range listing.Items {
				name := entry.Name
				size := pfs.FormatSize(entry.Stats.Size)
				if entry.Stats.IsDirectory {
					name = cyan(name + "/")
					size = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", size, entry.Stats.MTime, name)
			}
			return w.Flush()
		},
	}
}
