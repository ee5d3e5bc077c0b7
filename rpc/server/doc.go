// Package server implements the dConf RPC server. A server hosts any number of
// shards; each shard is an independent configuration store addressed by its id.
//
// Key Components:
//
//   - IRPCServerAdapter: translates request messages into store.IStore calls.
//     NewIStoreServerAdapter is the adapter for configuration stores.
//
//   - RPCServer: creates the shards from the configuration, decodes requests
//     with the configured serializer, routes them to the shard and encodes the
//     responses. Shards live in a concurrent map (xsync.MapOf).
//
// Shard types:
//
//   - memory: a transient store (mstore), lost on restart.
//   - file: a durable store (fstore) in "<DataDir>/shard-<id>.json".
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Shards: []common.ServerShard{
//	    {ShardID: 1, Type: common.ShardTypeFile},
//	    {ShardID: 2, Type: common.ShardTypeMemory},
//	  },
//	  DataDir:  "./data",
//	  Endpoint: "0.0.0.0:8080",
//	  LogLevel: "info",
//	}
//
//	s := server.NewRPCServer(config, http.NewHttpServerTransport(), serializer.NewJSONSerializer())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Serve blocks until SIGINT or SIGTERM. It then shuts the transport down, waits
// for in-flight requests and closes every shard store exactly once, so pending
// file writes are flushed before the process exits.
package server
