package rstore

import (
	"context"
	"fmt"
	"io"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/value"
)

// DefaultPrefix is prepended to every key when Options.Prefix is empty.
const DefaultPrefix = "config:"

// Options configures a remote store.
type Options struct {
	// Client is the connected client. It is required.
	Client Client
	// Prefix namespaces all keys of this store (default "config:").
	Prefix string
}

type storeImpl struct {
	client Client
	prefix string
}

// NewStore creates a remote store on top of an already connected client.
// The store keeps no local state; every operation is a round trip.
func NewStore(opts Options) (store.IStore, error) {
	if opts.Client == nil {
		return nil, store.NewError(store.KindConnection, "remote store requires a connected client")
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	return &storeImpl{
		client: opts.Client,
		prefix: opts.Prefix,
	}, nil
}

// wireKey returns the namespaced key sent to the client.
func (s *storeImpl) wireKey(key string) string {
	return s.prefix + key
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(ctx context.Context, key string) (value.Value, error) {
	if err := store.CheckKey(key); err != nil {
		return value.Null(), err
	}
	payload, found, err := s.client.Get(ctx, s.wireKey(key))
	if err != nil {
		return value.Null(), translate("get", key, err)
	}
	if !found {
		return value.Null(), nil
	}
	v, err := value.Decode(payload)
	if err != nil {
		return value.Null(), store.WrapError(store.KindSerialization, fmt.Sprintf("failed to decode value of key %q", key), err)
	}
	return v, nil
}

func (s *storeImpl) Set(ctx context.Context, key string, v value.Value) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	payload, err := value.Encode(v, false)
	if err != nil {
		return false, store.WrapError(store.KindSerialization, fmt.Sprintf("failed to encode value of key %q", key), err)
	}
	ok, err := s.client.Set(ctx, s.wireKey(key), payload)
	if err != nil {
		return false, translate("set", key, err)
	}
	return ok, nil
}

func (s *storeImpl) Delete(ctx context.Context, key string) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	removed, err := s.client.Del(ctx, s.wireKey(key))
	if err != nil {
		return false, translate("delete", key, err)
	}
	return removed, nil
}

func (s *storeImpl) Has(ctx context.Context, key string) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	found, err := s.client.Exists(ctx, s.wireKey(key))
	if err != nil {
		return false, translate("check", key, err)
	}
	return found, nil
}

// Close ends the client connection if the client supports it.
func (s *storeImpl) Close() error {
	switch c := s.client.(type) {
	case Quitter:
		if err := c.Quit(context.Background()); err != nil {
			return translate("quit", "", err)
		}
	case io.Closer:
		if err := c.Close(); err != nil {
			return translate("close", "", err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// translate turns a client failure into a connection error that keeps the
// client's error as its cause.
func translate(op, key string, err error) error {
	if key == "" {
		return store.WrapError(store.KindConnection, "failed to "+op+" client", err)
	}
	return store.WrapError(store.KindConnection, fmt.Sprintf("failed to %s key %q", op, key), err)
}
