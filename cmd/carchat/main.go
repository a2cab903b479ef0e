// Command carchat runs either side of the vehicle-search chat: the server
// (carchat serve) or the terminal client (carchat chat).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryuvi/carchat/core/buildinfo"
)

var configFlag string

func main() {
	root := &cobra.Command{
		Use:           "carchat",
		Short:         "Guided vehicle-search chat over a lockstep websocket session",
		Version:       fmt.Sprintf("%s (%s, %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file (default $CONFIG_PATH or config.yaml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newChatCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
