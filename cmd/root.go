package cmd

import (
	"fmt"
	"os"

	"github.com/kvrdb/kvr/cmd/kv"
	"github.com/kvrdb/kvr/cmd/serve"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kvr",
		Short: "single-threaded, event-driven key-value server",
		Long: fmt.Sprintf(`kvr (v%s)

A single-threaded, event-driven TCP key-value server serving string and
sorted-set commands over a length-prefixed binary protocol, with per-key
TTL and idle-connection reaping.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kvr",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("kvr v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
