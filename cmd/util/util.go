package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/ValentinKolb/dConf/rpc/common"
	"github.com/ValentinKolb/dConf/rpc/serializer"
	"github.com/ValentinKolb/dConf/rpc/transport"
	"github.com/ValentinKolb/dConf/rpc/transport/http"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by dconf
	EnvPrefix = "dconf"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupRPCClientFlags adds common RPC connection flags to a command
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of the client"))

	key = "transport-endpoints"
	cmd.PersistentFlags().String(key, "http://localhost:8080", WrapString("The address of the dConf server. Multiple endpoints can be specified as a comma-separated list and are used round-robin"))

	key = "transport-conn-per-endpoint"
	cmd.PersistentFlags().Int(key, 1, WrapString("Idle connections kept per endpoint"))

	key = "transport-retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to retry the request"))

	key = "shard"
	cmd.PersistentFlags().Int(key, 1, WrapString("ID of the shard to connect to"))
}

// InitConfig loads .env files and initializes viper to read environment variables
// of the form DCONF_<FLAG> (e.g. DCONF_LOG_LEVEL=debug).
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	var endpoints []string
	for _, e := range strings.Split(viper.GetString("transport-endpoints"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}

	return &common.ClientConfig{
		Endpoints:              endpoints,
		TimeoutSecond:          viper.GetInt("timeout"),
		RetryCount:             viper.GetInt("transport-retries"),
		ConnectionsPerEndpoint: viper.GetInt("transport-conn-per-endpoint"),
	}
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.IRPCSerializer, error) {
	return serializer.New(viper.GetString("serializer"))
}

// GetClientTransport creates the client transport
func GetClientTransport() transport.IRPCClientTransport {
	return http.NewHttpClientTransport()
}

// GetServerTransport creates the server transport
func GetServerTransport() transport.IRPCServerTransport {
	return http.NewHttpServerTransport()
}

// GetShardID retrieves the configured shard ID
func GetShardID() uint64 {
	return uint64(viper.GetInt("shard"))
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// NewLogger creates the structured logger used by client commands. Output goes
// to stderr so that stdout only carries command results.
func NewLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "dconf",
		Level:  hclog.LevelFromString(viper.GetString("log-level")),
		Output: os.Stderr,
	})
}

// --------------------------------------------------------------------------
// Values
// --------------------------------------------------------------------------

// ParseValue interprets a command line argument as JSON. Arguments that are not
// valid JSON are taken as plain strings, so `dconf cfg set theme dark` works
// without quoting.
func ParseValue(arg string) value.Value {
	if v, err := value.Decode([]byte(arg)); err == nil {
		return v
	}
	return value.String(arg)
}

// Output formats understood by WriteValue
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// WriteValue prints v to w in the given output format.
func WriteValue(w io.Writer, v value.Value, format string) error {
	switch strings.ToLower(format) {
	case OutputJSON, "":
		b, err := value.Encode(v, true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case OutputYAML:
		b, err := yaml.Marshal(v.Interface())
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("invalid output format %s (expected json or yaml)", format)
	}
}
