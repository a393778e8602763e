package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vauradkar/letso/internal/pfs"
)

func newStatCmd(newSDK sdkFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Show metadata of a file or directory on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseRemote(args[0])
			if err != nil {
				return err
			}
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			item, err := sdk.Lookup(cmd.Context(), p)
			if err != nil {
				return err
			}
			if item.Stats == nil {
				return fmt.Errorf("%s: no such file or directory", displayName(p))
			}

			out := cmd.OutOrStdout()
			stats := item.Stats
			fmt.Fprintf(out, "path:   %s\n", displayName(item.Path))
			if stats.IsDirectory {
				fmt.Fprintln(out, "type:   directory")
			} else {
				fmt.Fprintln(out, "type:   file")
				fmt.Fprintf(out, "size:   %s (%d bytes)\n", pfs.FormatSize(stats.Size), stats.Size)
			}
			fmt.Fprintf(out, "mtime:  %s\n", stats.MTime)
			if stats.Digest != nil {
				fmt.Fprintf(out, "sha256: %s\n", *stats.Digest)
			}
			return nil
		},
	}
}
