// Package transport defines the interfaces of the RPC transport layer. A
// transport moves opaque, already serialized requests and responses between a
// client and a server and routes them by shard id.
//
// Key Components:
//
//   - IRPCClientTransport: connection management and request sending.
//   - IRPCServerTransport: receives requests, hands them to the registered
//     ServerHandleFunc and supports graceful shutdown.
//
// The http subpackage contains the implementation used by dConf.
package transport
