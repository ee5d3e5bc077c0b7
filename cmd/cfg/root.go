package cfg

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ValentinKolb/dConf/cmd/util"
	"github.com/ValentinKolb/dConf/lib/manager"
	"github.com/ValentinKolb/dConf/lib/store/fstore"
	"github.com/ValentinKolb/dConf/lib/store/rstore"
	"github.com/ValentinKolb/dConf/rpc/client"
	"github.com/ValentinKolb/dConf/rpc/common"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	mgr *manager.Manager

	// ConfigCommands represents the configuration command group
	ConfigCommands = &cobra.Command{
		Use:                "cfg",
		Short:              "Read and write configuration values",
		PersistentPreRunE:  openManager,
		PersistentPostRunE: closeManager,
	}
)

func init() {
	// Add common RPC flags, used with --store remote
	util.SetupRPCClientFlags(ConfigCommands)

	key := "store"
	ConfigCommands.PersistentFlags().String(key, manager.StoreFile, util.WrapString("Backend to use: memory, file, remote (a dConf server) or redis"))

	key = "path"
	ConfigCommands.PersistentFlags().String(key, fstore.DefaultPath, util.WrapString("Data file of the file backend"))

	key = "pretty"
	ConfigCommands.PersistentFlags().Bool(key, true, util.WrapString("Whether the file backend writes indented JSON"))

	key = "prefix"
	ConfigCommands.PersistentFlags().String(key, rstore.DefaultPrefix, util.WrapString("Key prefix of the remote and redis backends"))

	key = "redis-addr"
	ConfigCommands.PersistentFlags().String(key, "localhost:6379", util.WrapString("Comma-separated redis addresses used by the redis backend"))

	key = "output"
	ConfigCommands.PersistentFlags().StringP(key, "o", util.OutputJSON, util.WrapString("Output format of values (json, yaml)"))

	// Add subcommands
	ConfigCommands.AddCommand(getCmd)
	ConfigCommands.AddCommand(setCmd)
	ConfigCommands.AddCommand(delCmd)
	ConfigCommands.AddCommand(hasCmd)
}

// openManager creates the manager for the selected backend
func openManager(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := common.InitLoggers(viper.GetString("log-level"), os.Stderr); err != nil {
		return err
	}

	opts := manager.Options{
		StoreType: strings.ToLower(viper.GetString("store")),
		Logger:    util.NewLogger(),
		File: fstore.Options{
			Path:   viper.GetString("path"),
			Pretty: fstore.Bool(viper.GetBool("pretty")),
		},
	}

	switch opts.StoreType {
	case manager.StoreRemote:
		c, err := connectRPC()
		if err != nil {
			return err
		}
		opts.Remote = rstore.Options{Client: c, Prefix: viper.GetString("prefix")}
	case manager.StoreRedis:
		c, err := connectRedis(cmd.Context())
		if err != nil {
			return err
		}
		opts.Remote = rstore.Options{Client: c, Prefix: viper.GetString("prefix")}
	}

	var err error
	mgr, err = manager.Open(opts)
	return err
}

// closeManager waits for pending writes and releases the backend
func closeManager(_ *cobra.Command, _ []string) error {
	if mgr == nil {
		return nil
	}
	return mgr.Close()
}

// connectRPC creates a client for a shard of a dConf server
func connectRPC() (rstore.Client, error) {
	s, err := util.GetSerializer()
	if err != nil {
		return nil, err
	}
	return client.NewRPCClient(
		util.GetShardID(),
		*util.GetClientConfig(),
		util.GetClientTransport(),
		s,
	)
}

// connectRedis creates a redis client and checks that the server is reachable
func connectRedis(ctx context.Context) (rstore.Client, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := time.Duration(viper.GetInt("timeout")) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return rstore.ConnectRedis(ctx, &redis.UniversalOptions{
		Addrs:       strings.Split(viper.GetString("redis-addr"), ","),
		DialTimeout: timeout,
	})
}

// opContext bounds a single store operation by the configured timeout
func opContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := viper.GetInt("timeout"); timeout > 0 {
		return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	}
	return context.WithCancel(ctx)
}

// errNotFound is returned by get for missing keys so that the exit code is non-zero
var errNotFound = errors.New("key not found")
