package kv

import (
	"time"

	cmdUtil "github.com/kvrdb/kvr/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	client        *Client
	clientTimeout time.Duration

	// KeyValueCommands is the "kvr client" command group: one subcommand
	// per server command, each sending a single request over the shared
	// connection dialed in PersistentPreRunE and printing the decoded
	// reply.
	KeyValueCommands = &cobra.Command{
		Use:               "client",
		Short:             "Talk to a running kvr server",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)
	cmdUtil.SetupClientFlags(KeyValueCommands)

	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(pexpireCmd)
	KeyValueCommands.AddCommand(pttlCmd)
	KeyValueCommands.AddCommand(keysCmd)
	KeyValueCommands.AddCommand(zaddCmd)
	KeyValueCommands.AddCommand(zremCmd)
	KeyValueCommands.AddCommand(zscoreCmd)
	KeyValueCommands.AddCommand(zqueryCmd)
	KeyValueCommands.AddCommand(perfCmd)
}

// setupClient dials the server named by the addr flag, storing the
// connection for every subcommand's RunE to share.
func setupClient(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	clientTimeout = time.Duration(viper.GetInt("timeout")) * time.Second

	var err error
	client, err = Dial(viper.GetString("addr"), clientTimeout)
	return err
}
