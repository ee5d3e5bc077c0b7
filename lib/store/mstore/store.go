package mstore

import (
	"context"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/puzpuzpuz/xsync/v3"
)

type storeImpl struct {
	data *xsync.MapOf[string, []byte]
}

// NewStore creates a new transient store. All data is lost when the process exits.
// Values are kept in their encoded form so that they round trip exactly like
// they would through a persistent backend.
func NewStore() store.IStore {
	return &storeImpl{
		data: xsync.NewMapOf[string, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Get(_ context.Context, key string) (value.Value, error) {
	if err := store.CheckKey(key); err != nil {
		return value.Null(), err
	}
	raw, ok := s.data.Load(key)
	if !ok {
		return value.Null(), nil
	}
	v, err := value.Decode(raw)
	if err != nil {
		return value.Null(), store.WrapError(store.KindSerialization, "failed to decode value of key "+key, err)
	}
	return v, nil
}

func (s *storeImpl) Set(_ context.Context, key string, v value.Value) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	raw, err := value.Encode(v, false)
	if err != nil {
		return false, store.WrapError(store.KindSerialization, "failed to encode value of key "+key, err)
	}
	s.data.Store(key, raw)
	return true, nil
}

func (s *storeImpl) Delete(_ context.Context, key string) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	_, removed := s.data.LoadAndDelete(key)
	return removed, nil
}

func (s *storeImpl) Has(_ context.Context, key string) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	_, ok := s.data.Load(key)
	return ok, nil
}
