// Package http implements the RPC transport over HTTP.
//
// Every request is a POST to "/{shardId}" whose body is the serialized request
// message; the response body is the serialized response message.
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. Selects endpoints
//     round-robin, retries failed requests on the next endpoint and honours
//     the request context.
//
//   - httpServerTransport: Implements IRPCServerTransport. Routes requests to
//     the registered handler by shard id, optionally exposes VictoriaMetrics
//     on ServerConfig.MetricsPath and shuts down gracefully.
//
// Thread Safety:
//
//	The client transport is safe for concurrent use after Connect. It uses an
//	atomic counter for the round-robin selection.
package http
