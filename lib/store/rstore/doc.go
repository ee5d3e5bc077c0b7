// Package rstore provides the remote configuration backend: a thin layer over an
// externally connected client that talks to a shared cache or store.
//
// The store does not open connections itself. It takes a Client (see client.go),
// prefixes every key with a namespace (default "config:") and translates failures:
//
//   - values that cannot be encoded, or payloads that cannot be decoded, yield a
//     serialization error
//   - every client failure yields a connection error with the client's error as cause
//
// Creating a store without a client fails with a connection error.
//
// Clients:
//
//   - NewRedisClient / ConnectRedis: Redis through github.com/redis/go-redis/v9
//   - rpc/client.NewRPCClient: a dConf server (see "dconf serve")
//
// Usage:
//
//	client, err := rstore.ConnectRedis(ctx, &redis.UniversalOptions{Addrs: []string{"localhost:6379"}})
//	s, err := rstore.NewStore(rstore.Options{Client: client, Prefix: "app:"})
package rstore
