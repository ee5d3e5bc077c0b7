package serve

import (
	"fmt"
	"strconv"
	"strings"

	cmdUtil "github.com/ValentinKolb/dConf/cmd/util"
	"github.com/ValentinKolb/dConf/rpc/common"
	"github.com/ValentinKolb/dConf/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the dConf server",
		Long:    `Start the dConf server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is DCONF_<flag> (e.g. DCONF_DATA_DIR=/var/lib/dconf)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "shards"
	ServeCmd.PersistentFlags().String(key, "1=file", cmdUtil.WrapString("Comma-separated list of shards to serve. Format: ID=TYPE where TYPE is one of: memory, file"))

	key = "data-dir"
	ServeCmd.PersistentFlags().String(key, "data", cmdUtil.WrapString("DataDir is the directory holding the JSON file of every file shard (shard-<ID>.json)"))

	key = "pretty"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether file shards are written with indentation"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds for reading a request and writing its response"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080)"))

	key = "metrics-path"
	ServeCmd.PersistentFlags().String(key, "/metrics", cmdUtil.WrapString("Path on which metrics are exposed in the prometheus text format. Empty disables the endpoint"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	shards, err := parseShards(viper.GetString("shards"))
	if err != nil {
		return err
	}
	serveCmdConfig.Shards = shards

	serveCmdConfig.DataDir = viper.GetString("data-dir")
	serveCmdConfig.Pretty = viper.GetBool("pretty")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.MetricsPath = viper.GetString("metrics-path")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	return nil
}

// parseShards parses a list of the form "1=file,2=memory".
func parseShards(list string) ([]common.ServerShard, error) {
	var shards []common.ServerShard
	seen := map[uint64]struct{}{}

	for _, shardConfig := range strings.Split(list, ",") {
		if strings.TrimSpace(shardConfig) == "" {
			continue
		}
		parts := strings.Split(shardConfig, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid shard format: %s (expected ID=TYPE)", shardConfig)
		}

		shardID, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shard ID %s: %v", parts[0], err)
		}
		if _, dup := seen[shardID]; dup {
			return nil, fmt.Errorf("duplicate shard ID %d", shardID)
		}
		seen[shardID] = struct{}{}

		shardType, err := common.ParseShardType(parts[1])
		if err != nil {
			return nil, err
		}

		shards = append(shards, common.ServerShard{
			ShardID: shardID,
			Type:    shardType,
		})
	}

	if len(shards) == 0 {
		return nil, fmt.Errorf("no shards configured")
	}
	return shards, nil
}

// run starts the dConf server
func run(_ *cobra.Command, _ []string) error {
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		cmdUtil.GetServerTransport(),
		s,
	)

	return serv.Serve()
}
