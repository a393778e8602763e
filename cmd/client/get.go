package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const defaultGetWorkers = 4

func newGetCmd(newSDK sdkFactory) *cobra.Command {
	var outDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "get <path>...",
		Short: "Download files from the server",
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

			locals := make([]string, len(paths))
			for i, p := range paths {
				name, ok := p.Basename()
				if !ok {
					return fmt.Errorf("%s: not a file", displayName(p))
				}
				locals[i] = filepath.Join(outDir, name)
			}

			var mu sync.Mutex
			eg, ctx := errgroup.WithContext(cmd.Context())
			eg.SetLimit(max(workers, 1))
			for i, p := range paths {
				local := locals[i]
				eg.Go(func() error {
					if err := sdk.DownloadFile(ctx, p, local); err != nil {
						return fmt.Errorf("%s: %w", displayName(p), err)
					}
					mu.Lock()
					defer mu.Unlock()
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", displayName(p), local)
					return nil
				})
			}
			return eg.Wait()
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "Local directory to write files into")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaultGetWorkers, "Number of parallel downloads")
	return cmd
}
