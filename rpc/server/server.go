package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/store/fstore"
	"github.com/ValentinKolb/dConf/lib/store/mstore"
	"github.com/ValentinKolb/dConf/rpc/common"
	"github.com/ValentinKolb/dConf/rpc/serializer"
	"github.com/ValentinKolb/dConf/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("rpc")

// shutdownTimeout bounds the wait for in-flight requests on shutdown
const shutdownTimeout = 10 * time.Second

// serverShard is a shard of the RPC server: the store it encapsulates and
// the adapter that handles requests for the store
type serverShard struct {
	Store   store.IStore
	Adapter IRPCServerAdapter
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		shards:     xsync.NewMapOf[uint64, serverShard](),
	}
}

type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	shards     *xsync.MapOf[uint64, serverShard]
	closeOnce  sync.Once
}

// Handle decodes a request for a shard, runs it and returns the encoded response.
// It is registered as the transport handler.
func (s *RPCServer) Handle(shardId uint64, req []byte) []byte {
	var msg common.Message
	var respMsg *common.Message

	shard, ok := s.shards.Load(shardId)
	if !ok {
		respMsg = common.NewErrorResponse(fmt.Errorf("shard %d not found", shardId))
	} else if err := s.serializer.Deserialize(req, &msg); err != nil {
		respMsg = common.NewErrorResponse(fmt.Errorf("failed to deserialize request: %w", err))
	} else {
		respMsg = shard.Adapter.Handle(context.Background(), &msg, shard.Store)
	}

	status := "ok"
	if respMsg.Err != "" {
		status = "error"
	}
	metrics.GetOrCreateCounter(fmt.Sprintf(`dconf_rpc_requests_total{shard="%s",op=%q,status=%q}`,
		strconv.FormatUint(shardId, 10), msg.MsgType.String(), status)).Inc()

	val, err := s.serializer.Serialize(*respMsg)
	if err != nil {
		Logger.Errorf("failed to serialize response: %v", err)
		val, _ = s.serializer.Serialize(*common.NewErrorResponse(fmt.Errorf("failed to serialize response: %w", err)))
	}
	return val
}

// init creates all shards and registers the transport handler
func (s *RPCServer) init() error {
	level := s.config.LogLevel
	if level == "" {
		level = "info"
	}
	if err := common.InitLoggers(level, nil); err != nil {
		return err
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof("%s", s.config.String())

	for _, shardConfig := range s.config.Shards {
		if _, exists := s.shards.Load(shardConfig.ShardID); exists {
			return fmt.Errorf("duplicate shard id %d", shardConfig.ShardID)
		}

		var st store.IStore
		switch shardConfig.Type {
		case common.ShardTypeMemory:
			st = mstore.NewStore()
		case common.ShardTypeFile:
			shardId := shardConfig.ShardID
			st = fstore.NewStore(fstore.Options{
				Path:   s.config.ShardFilePath(shardId),
				Pretty: fstore.Bool(s.config.Pretty),
				OnWriteError: func(err error) {
					Logger.Warningf("shard %d: %v", shardId, err)
				},
			})
		default:
			return fmt.Errorf("invalid shard type: %s", shardConfig.Type)
		}

		s.shards.Store(shardConfig.ShardID, serverShard{
			Store:   st,
			Adapter: NewIStoreServerAdapter(),
		})
		Logger.Infof("created %s store for shard %d", shardConfig.Type, shardConfig.ShardID)
	}

	s.transport.RegisterHandler(s.Handle)
	Logger.Infof("dConf setup completed successfully")
	return nil
}

// Serve initializes the shards, starts the transport and blocks until SIGINT or
// SIGTERM is received or the transport fails.
func (s *RPCServer) Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.ServeContext(ctx)
}

// ServeContext is like Serve but stops when ctx is done. On return the transport
// has been shut down and every shard store has been closed.
func (s *RPCServer) ServeContext(ctx context.Context) error {
	if err := s.init(); err != nil {
		s.Close()
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- s.transport.Listen(s.config)
	}()

	var err error
	select {
	case <-ctx.Done():
		Logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = s.transport.Shutdown(shutdownCtx)
		cancel()
		<-listenErr
	case err = <-listenErr:
		if err == nil {
			err = errors.New("transport stopped unexpectedly")
		}
	}

	if closeErr := s.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Close closes every shard store. It is safe to call more than once.
func (s *RPCServer) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		s.shards.Range(func(id uint64, shard serverShard) bool {
			if err := store.Close(shard.Store); err != nil {
				errs = append(errs, fmt.Errorf("shard %d: %w", id, err))
			}
			return true
		})
		Logger.Infof("closed all shards")
	})
	return errors.Join(errs...)
}
