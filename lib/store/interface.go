package store

import (
	"context"

	"github.com/ValentinKolb/dConf/lib/value"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the contract every configuration backend implements.
// Keys are non-empty opaque strings; a dot in a key has no special meaning.
// Failures are always returned as *Error (see errors.go).
type IStore interface {
	// Get returns the value stored for key, or value.Null() if the key does not exist.
	// A stored payload that cannot be decoded yields a serialization error.
	Get(ctx context.Context, key string) (v value.Value, err error)
	// Set encodes and stores v under key and reports whether the write was accepted.
	// A value that cannot be encoded yields a serialization error and leaves the store unchanged.
	Set(ctx context.Context, key string, v value.Value) (ok bool, err error)
	// Delete removes key and reports whether it existed. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) (removed bool, err error)
	// Has reports whether key exists, independent of its value (a stored null counts).
	Has(ctx context.Context, key string) (found bool, err error)
}

// ICloser is implemented by backends that hold resources (connections, goroutines).
type ICloser interface {
	// Close releases all resources held by the backend.
	Close() error
}

// Close closes s if it implements ICloser and is a no-op otherwise.
func Close(s IStore) error {
	if c, ok := s.(ICloser); ok {
		return c.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// CheckKey returns a config store error if key is empty.
func CheckKey(key string) error {
	if key == "" {
		return NewError(KindConfigStore, "key must not be empty")
	}
	return nil
}
