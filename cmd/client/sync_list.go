package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vauradkar/letso/internal/pfs"
)

func newSyncListCmd(newSDK sdkFactory) *cobra.Command {
	var digests bool

	cmd := &cobra.Command{
		Use:   "sync-list [path]",
		Short: "Stream the full listing below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := parseRemote(optionalArg(args))
			if err != nil {
				return err
			}
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var files, dirs int
			var total uint64
			err = sdk.ExchangeDeltas(cmd.Context(), &pfs.SyncRequest{Dest: dest}, func(batch []pfs.SyncItem) error {
				for _, item := range batch {
					if item.Stats == nil {
						continue
					}
					if item.Stats.IsDirectory {
						dirs++
					} else {
						files++
						total += item.Stats.Size
					}

					line := fmt.Sprintf("%s %10d %s %s", kindOf(item.Stats), item.Stats.Size, item.Stats.MTime, item.Path.String())
					if digests && item.Stats.Digest != nil {
						line += " " + *item.Stats.Digest
					}
					fmt.Fprintln(out, line)
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s files, %s directories, %s\n",
				humanize.Comma(int64(files)), humanize.Comma(int64(dirs)), humanize.IBytes(total))
			return nil
		},
	}

	cmd.Flags().BoolVar(&digests, "digests", false, "Print sha256 digests of files")
	return cmd
}
