package rstore

import (
	"context"
)

// Client is the minimal command set the remote store needs from a connected
// cache or store client. Keys passed to a Client already carry the prefix.
type Client interface {
	// Get returns the payload stored under key. found is false if the key does not exist.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	// Set stores payload under key and reports whether the backend acknowledged the write.
	Set(ctx context.Context, key string, payload []byte) (ok bool, err error)
	// Del removes key and reports whether it existed.
	Del(ctx context.Context, key string) (removed bool, err error)
	// Exists reports whether key exists.
	Exists(ctx context.Context, key string) (found bool, err error)
}

// Quitter is implemented by clients whose connection should be closed
// together with the store.
type Quitter interface {
	Quit(ctx context.Context) error
}
