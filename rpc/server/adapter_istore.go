package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/ValentinKolb/dConf/rpc/common"
)

func NewIStoreServerAdapter() IRPCServerAdapter {
	return &iStoreServerAdapterImpl{}
}

type iStoreServerAdapterImpl struct{}

func (adapter *iStoreServerAdapterImpl) Handle(ctx context.Context, req *common.Message, s store.IStore) *common.Message {
	if s == nil {
		return common.NewErrorResponse(errors.New("handler: store is nil"))
	}

	switch req.MsgType {
	case common.MsgTCfgGet:
		return adapter.get(ctx, req.Key, s)
	case common.MsgTCfgSet:
		v, err := value.Decode(req.Value)
		if err != nil {
			return common.NewSetResponse(false, store.WrapError(store.KindSerialization, fmt.Sprintf("failed to decode value of key %q", req.Key), err))
		}
		ok, err := s.Set(ctx, req.Key, v)
		return common.NewSetResponse(ok, err)
	case common.MsgTCfgDelete:
		ok, err := s.Delete(ctx, req.Key)
		return common.NewDeleteResponse(ok, err)
	case common.MsgTCfgHas:
		ok, err := s.Has(ctx, req.Key)
		return common.NewHasResponse(ok, err)
	default:
		return common.NewErrorResponse(fmt.Errorf("RPC IStoreAdapter - Unsupported message type: %s", req.MsgType))
	}
}

// get answers with the encoded value and whether the key exists. A stored null
// is found, a missing key is not.
func (adapter *iStoreServerAdapterImpl) get(ctx context.Context, key string, s store.IStore) *common.Message {
	v, err := s.Get(ctx, key)
	if err != nil {
		return common.NewGetResponse(nil, false, err)
	}
	if v.IsNull() {
		found, err := s.Has(ctx, key)
		if err != nil || !found {
			return common.NewGetResponse(nil, false, err)
		}
	}
	payload, err := value.Encode(v, false)
	if err != nil {
		return common.NewGetResponse(nil, false, store.WrapError(store.KindSerialization, fmt.Sprintf("failed to encode value of key %q", key), err))
	}
	return common.NewGetResponse(payload, true, nil)
}
