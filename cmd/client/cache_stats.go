package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCacheStatsCmd(newSDK sdkFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "cache-stats",
		Short: "Show the server's metadata cache counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			stats, err := sdk.CacheStats(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "hits: %s\nmisses: %s\n",
				humanize.Comma(int64(stats.Hits)), humanize.Comma(int64(stats.Misses)))
			return err
		},
	}
}
