package cfg

import (
	"fmt"

	"github.com/ValentinKolb/dConf/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(cmd)
			defer cancel()

			key := args[0]
			found, err := mgr.Has(ctx, key)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: %s", errNotFound, key)
			}
			v, err := mgr.Get(ctx, key)
			if err != nil {
				return err
			}
			return util.WriteValue(cmd.OutOrStdout(), v, viper.GetString("output"))
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Long: `Sets the value for a key. The value is parsed as JSON (e.g. 42, true, '{"limit": 10}');
anything that is not valid JSON is stored as a string.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(cmd)
			defer cancel()

			key := args[0]
			ok, err := mgr.Set(ctx, key, util.ParseValue(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, set=%t\n", key, ok)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(cmd)
			defer cancel()

			key := args[0]
			removed, err := mgr.Delete(ctx, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, removed=%t\n", key, removed)
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(cmd)
			defer cancel()

			key := args[0]
			found, err := mgr.Has(ctx, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, found=%t\n", key, found)
			return nil
		},
	}
)
