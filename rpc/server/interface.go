package server

import (
	"context"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/rpc/common"
)

// IRPCServerAdapter is the interface for all RPC server adapters.
// It translates a request message into calls on a store.
type IRPCServerAdapter interface {
	// Handle handles a request against s and returns the response.
	// Failures are reported inside the response, never as a Go error.
	Handle(ctx context.Context, req *common.Message, s store.IStore) (resp *common.Message)
}
