package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dConf/cmd/cfg"
	"github.com/ValentinKolb/dConf/cmd/serve"
	"github.com/ValentinKolb/dConf/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dconf",
		Short: "dynamic configuration store",
		Long: fmt.Sprintf(`dConf (v%s)

A small configuration store for JSON values, backed by memory, a JSON file
or a shared remote service.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dConf",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dConf v%s\n", Version)
		},
	}
)

func init() {
	// load .env files and environment variables for all commands
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(cfg.ConfigCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer of the rpc protocol (json, gob)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("level at which logs will be output (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
