package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/store/mstore"
	"github.com/ValentinKolb/dConf/lib/store/rstore"
	storetesting "github.com/ValentinKolb/dConf/lib/store/testing"
	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/ValentinKolb/dConf/rpc/common"
	"github.com/ValentinKolb/dConf/rpc/serializer"
	"github.com/ValentinKolb/dConf/rpc/server"
	rpchttp "github.com/ValentinKolb/dConf/rpc/transport/http"
)

// newTestServer serves a fresh memory store as shard 1 over HTTP
func newTestServer(t *testing.T, ser serializer.IRPCSerializer) *httptest.Server {
	adapter := server.NewIStoreServerAdapter()
	st := mstore.NewStore()

	ts := httptest.NewServer(newHandler(ser, func(shardId uint64, req *common.Message) *common.Message {
		if shardId != 1 {
			return common.NewErrorResponse(errors.New("shard not found"))
		}
		return adapter.Handle(context.Background(), req, st)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// newHandler decodes requests like the server transport does and answers with fn
func newHandler(ser serializer.IRPCSerializer, fn func(shardId uint64, req *common.Message) *common.Message) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{shardId}", func(w http.ResponseWriter, r *http.Request) {
		shardId, err := strconv.ParseUint(r.PathValue("shardId"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid shardId", http.StatusBadRequest)
			return
		}
		body, _ := io.ReadAll(r.Body)

		var req common.Message
		var resp *common.Message
		if err := ser.Deserialize(body, &req); err != nil {
			resp = common.NewErrorResponse(err)
		} else {
			resp = fn(shardId, &req)
		}
		out, _ := ser.Serialize(*resp)
		w.Write(out)
	})
	return mux
}

func newStore(t *testing.T, url string, shardId uint64, ser serializer.IRPCSerializer) store.IStore {
	c, err := NewRPCClient(shardId, common.ClientConfig{
		Endpoints:     []string{url},
		TimeoutSecond: 5,
		RetryCount:    1,
	}, rpchttp.NewHttpClientTransport(), ser)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	s, err := rstore.NewStore(rstore.Options{Client: c})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func TestRPCStore(t *testing.T) {
	for name, ser := range map[string]serializer.IRPCSerializer{
		"JSON": serializer.NewJSONSerializer(),
		"GOB":  serializer.NewGOBSerializer(),
	} {
		storetesting.RunStoreTests(t, "RPCStore"+name, func() store.IStore {
			return newStore(t, newTestServer(t, ser).URL, 1, ser)
		})
	}
}

func TestServerErrorsKeepTheirKind(t *testing.T) {
	ser := serializer.NewJSONSerializer()
	ts := newTestServer(t, ser)

	c, _ := NewRPCClient(1, common.ClientConfig{Endpoints: []string{ts.URL}, TimeoutSecond: 5}, rpchttp.NewHttpClientTransport(), ser)

	_, err := c.Set(context.Background(), "a", []byte("{"))
	if !errors.Is(err, store.ErrSerialization) {
		t.Errorf("Expected the server's serialization error, got %v", err)
	}

	s, _ := rstore.NewStore(rstore.Options{Client: c})
	_, err = s.Get(context.Background(), "")
	if !errors.Is(err, store.ErrConfigStore) {
		t.Errorf("Expected a config store error for an empty key, got %v", err)
	}
}

func TestUnknownShard(t *testing.T) {
	ser := serializer.NewJSONSerializer()
	s := newStore(t, newTestServer(t, ser).URL, 7, ser)

	_, err := s.Get(context.Background(), "a")
	if !errors.Is(err, store.ErrConnection) {
		t.Errorf("Expected a connection error for an unknown shard, got %v", err)
	}
}

func TestServerDown(t *testing.T) {
	ser := serializer.NewJSONSerializer()
	ts := newTestServer(t, ser)
	s := newStore(t, ts.URL, 1, ser)
	ts.Close()

	if _, err := s.Set(context.Background(), "a", value.Number(1)); !errors.Is(err, store.ErrConnection) {
		t.Errorf("Expected a connection error when the server is down, got %v", err)
	}
}
