package common

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

type ServerShardType string

const (
	ShardTypeMemory ServerShardType = "memory" // transient store, lost on restart
	ShardTypeFile   ServerShardType = "file"   // durable store, one JSON file per shard
)

// ParseShardType validates a shard type given as a string.
func ParseShardType(s string) (ServerShardType, error) {
	switch t := ServerShardType(strings.ToLower(strings.TrimSpace(s))); t {
	case ShardTypeMemory, ShardTypeFile:
		return t, nil
	default:
		return "", fmt.Errorf("invalid shard type %q, must be one of memory, file", s)
	}
}

type ServerShard struct {
	// ShardID is the ID of the shard
	ShardID uint64
	// Type selects the store backing the shard
	Type ServerShardType
}

// ServerConfig holds all configuration parameters of a dConf server.
type ServerConfig struct {
	// Shards served by this server
	Shards []ServerShard

	// File store parameters
	DataDir string
	Pretty  bool

	// HTTP api settings
	Endpoint      string
	TimeoutSecond int64
	MetricsPath   string // exposes VictoriaMetrics on this path if not empty

	// Logging configuration
	LogLevel string
}

// ShardFilePath returns the data file of a file shard.
func (c *ServerConfig) ShardFilePath(shardId uint64) string {
	return filepath.Join(c.DataDir, fmt.Sprintf("shard-%d.json", shardId))
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	if c.MetricsPath != "" {
		addField("Metrics", c.MetricsPath)
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Storage
	addSection("Storage")
	addField("Data Directory", c.DataDir)
	addField("Pretty", strconv.FormatBool(c.Pretty))

	// Shards
	addSection("Shards")
	for _, shard := range c.Shards {
		desc := string(shard.Type)
		if shard.Type == ShardTypeFile {
			desc = fmt.Sprintf("%s (%s)", desc, c.ShardFilePath(shard.ShardID))
		}
		addField(strconv.FormatUint(shard.ShardID, 10), desc)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints              []string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.ConnectionsPerEndpoint)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
