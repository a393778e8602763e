package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newPutCmd(newSDK sdkFactory) *cobra.Command {
	var dir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "put <file>...",
		Short: "Upload local files to the server, keeping their modification times",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, err := parseRemote(dir)
			if err != nil {
				return err
			}
			sdk, err := newSDK()
			if err != nil {
				return err
			}

			for _, local := range args {
				if err := sdk.UploadFile(cmd.Context(), local, remote, overwrite); err != nil {
					return fmt.Errorf("%s: %w", local, err)
				}
				target, _ := remote.Join(filepath.Base(local))
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", local, displayName(target))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Remote directory to upload into")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "Replace existing files")
	return cmd
}
