package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vauradkar/letso/internal/letsosdk"
	"github.com/vauradkar/letso/internal/version"
)

const defaultServerURL = "http://localhost:3000"

var (
	red  = color.New(color.FgHiRed, color.Bold).SprintFunc()
	cyan = color.New(color.FgHiCyan).SprintFunc()
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "letso",
		Short:         "Letso file server client",
		Version:       version.Detailed(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("server", "s", defaultServerURL, "Letso server url")
	cmd.PersistentFlags().Bool("debug", false, "Dump http requests and responses")
	v.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	v.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	v.SetEnvPrefix("LETSO")
	v.AutomaticEnv()

	newSDK := func() (*letsosdk.LetsoSDK, error) {
		sdk, err := letsosdk.New(v.GetString("server"))
		if err != nil {
			return nil, err
		}
		sdk.SetDebug(v.GetBool("debug"))
		return sdk, nil
	}

	cmd.AddCommand(
		newLsCmd(newSDK),
		newStatCmd(newSDK),
		newGetCmd(newSDK),
		newPutCmd(newSDK),
		newRmCmd(newSDK),
		newSyncListCmd(newSDK),
		newCacheStatsCmd(newSDK),
		newVersionCmd(newSDK),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		cmd.PrintErrln(red("error:"), err)
		os.Exit(1)
	}
}
