// Package client implements the client side of the dConf RPC stack.
//
// NewRPCClient returns a client for one shard of a server. It implements
// rstore.Client, so the remote configuration store can be backed by a dConf
// server just like by Redis:
//
//	config := common.ClientConfig{
//	  Endpoints:     []string{"localhost:8080"},
//	  TimeoutSecond: 5,
//	  RetryCount:    3,
//	}
//
//	c, err := client.NewRPCClient(1, config, http.NewHttpClientTransport(), serializer.NewJSONSerializer())
//	s, err := rstore.NewStore(rstore.Options{Client: c})
//
// Errors reported by the server's store keep their kind (ConfigStoreError,
// ConnectionError, SerializationError). Transport failures are plain errors that
// the remote store turns into connection errors.
//
// Thread Safety:
//
//	Clients are safe for concurrent use from multiple goroutines.
package client
