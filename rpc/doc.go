// Package rpc lets several processes share one set of configuration stores.
// A dConf server ("dconf serve") hosts the stores; clients reach them through
// the remote configuration store (rstore) backed by an RPC client.
//
// The package is organized into several subpackages:
//
//   - common: the Message protocol, configuration structures and logging.
//
//   - transport: transport abstractions with an HTTP implementation.
//
//   - serializer: Message serialization (JSON, GOB).
//
//   - client: the RPC client, an implementation of rstore.Client.
//
//   - server: the RPC server with its shards and the store adapter.
package rpc
