package transport

import (
	"context"

	"github.com/ValentinKolb/dConf/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests.
// It is called by a server transport when a request is received and
// returns the serialized response for the given shard.
type ServerHandleFunc func(shardId uint64, req []byte) (resp []byte)

// IRPCServerTransport is the interface for the server side of the RPC transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers the handler that is called for every request.
	// The transport is responsible for routing the request to the right shard id.
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport and blocks until it is shut down.
	// After a graceful Shutdown it returns nil.
	Listen(config common.ServerConfig) error
	// Shutdown stops accepting requests and waits for in-flight requests until ctx is done.
	Shutdown(ctx context.Context) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the client side of the RPC transport layer
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request for a shard to the server and returns the response
	Send(ctx context.Context, shardId uint64, req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
