package client

import (
	"context"

	"github.com/ValentinKolb/dConf/lib/store/rstore"
	"github.com/ValentinKolb/dConf/rpc/common"
	"github.com/ValentinKolb/dConf/rpc/serializer"
	"github.com/ValentinKolb/dConf/rpc/transport"
)

// NewRPCClient creates a client for one shard of a dConf server.
// The returned client can be used as rstore.Client.
func NewRPCClient(
	shardId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*RPCClient, error) {
	if err := transport.Connect(config); err != nil {
		return nil, err
	}
	Logger.Debugf("connected rpc client for shard %d%s", shardId, config.String())

	return &RPCClient{
		rpcClientAdapter{
			shardId:    shardId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

// RPCClient implements rstore.Client and rstore.Quitter on top of the RPC stack.
type RPCClient struct {
	rpcClientAdapter
}

var (
	_ rstore.Client  = (*RPCClient)(nil)
	_ rstore.Quitter = (*RPCClient)(nil)
)

// --------------------------------------------------------------------------
// Interface Methods (docu see rstore.Client)
// --------------------------------------------------------------------------

func (c *RPCClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := c.invoke(ctx, common.NewGetRequest(key))
	if err != nil {
		return nil, false, err
	}
	return resp.Value, resp.Ok, nil
}

func (c *RPCClient) Set(ctx context.Context, key string, payload []byte) (bool, error) {
	resp, err := c.invoke(ctx, common.NewSetRequest(key, payload))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (c *RPCClient) Del(ctx context.Context, key string) (bool, error) {
	resp, err := c.invoke(ctx, common.NewDeleteRequest(key))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

func (c *RPCClient) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := c.invoke(ctx, common.NewHasRequest(key))
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

// Quit closes the transport.
func (c *RPCClient) Quit(_ context.Context) error {
	return c.transport.Close()
}
