// Package serve implements the "kvr serve" command: it bootstraps a
// reactor.Reactor from cobra flags/viper/env configuration and runs its
// event loop until the process is killed or the listening socket fails.
package serve

import (
	"time"

	cmdUtil "github.com/kvrdb/kvr/cmd/util"
	"github.com/kvrdb/kvr/reactor"
	"github.com/kvrdb/kvr/reactor/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmdConfig reactor.Config

// ServeCmd runs the kvr reactor server with the specified configuration.
// The configuration can be set via command line flags or KVR_-prefixed
// environment variables (e.g. KVR_WORKERS=8).
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the kvr server",
	Long:    `Start the kvr server with the specified configuration. The configuration can be set via command line flags or environment variables (KVR_<FLAG>, e.g. KVR_WORKERS=8).`,
	PreRunE: processConfig,
	RunE:    run,
}

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)

	key := "addr"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:1234", cmdUtil.WrapString("The TCP address to listen on"))

	key = "workers"
	ServeCmd.PersistentFlags().Int(key, 4, cmdUtil.WrapString("Number of workers backing deferred destruction of large values"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and
// environment variables and converts them to reactor.Config.
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	serveCmdConfig.Addr = viper.GetString("addr")
	serveCmdConfig.Workers = viper.GetInt("workers")

	return nil
}

// run starts the kvr reactor and blocks until it exits with an error.
func run(_ *cobra.Command, _ []string) error {
	level := common.ParseLevel(viper.GetString("log-level"))
	logger := common.New("reactor", level)

	r, err := reactor.New(serveCmdConfig, logger, nowMs)
	if err != nil {
		return err
	}
	defer r.Close()

	return r.Run()
}

// processStart anchors nowMs. time.Since reads Go's monotonic clock, so
// TTL and idle deadlines are not moved by wall-clock adjustments.
var processStart = time.Now()

func nowMs() int64 {
	return time.Since(processStart).Milliseconds()
}
