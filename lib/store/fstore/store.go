package fstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/util"
	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"
)

var log = logger.GetLogger("store")

// initialization states
const (
	stateUninitialized int32 = iota
	stateInitializing
	stateReady
)

// writeJob asks the writer to persist the mirror. seq is the submission number.
type writeJob struct {
	seq uint64
}

// Store is a file backed configuration store. It implements store.IStore and store.ICloser.
type Store struct {
	path         string
	pretty       bool
	fs           afero.Fs
	wait         bool
	onWriteError func(error)

	// initialization
	state atomic.Int32
	group singleflight.Group

	// in-memory mirror, guarded by mu
	mu        sync.RWMutex
	data      map[string]json.RawMessage
	submitted uint64 // last enqueued job, guarded by mu
	closed    atomic.Bool

	// write pipeline
	queue      *util.Queue[writeJob]
	writerDone chan struct{}
	closeOnce  sync.Once

	// progress of the writer, guarded by progressMu
	progressMu sync.Mutex
	completed  uint64
	progressCh chan struct{}

	// metrics
	writes        *metrics.Counter
	writeErrors   *metrics.Counter
	writeDuration *metrics.Histogram
	fileSize      *atomic.Uint64
}

// NewStore creates a new file store. No I/O happens until the first operation.
func NewStore(opts Options) *Store {
	opts = opts.withDefaults()

	s := &Store{
		path:         opts.Path,
		pretty:       *opts.Pretty,
		fs:           opts.Fs,
		wait:         *opts.WaitForWrite,
		onWriteError: opts.OnWriteError,
		data:         map[string]json.RawMessage{},
		queue:        util.NewQueue[writeJob](),
		writerDone:   make(chan struct{}),
		progressCh:   make(chan struct{}),

		writes:        metrics.GetOrCreateCounter(fmt.Sprintf(`dconf_fstore_writes_total{path=%q}`, opts.Path)),
		writeErrors:   metrics.GetOrCreateCounter(fmt.Sprintf(`dconf_fstore_write_errors_total{path=%q}`, opts.Path)),
		writeDuration: metrics.GetOrCreateHistogram(fmt.Sprintf(`dconf_fstore_write_duration_seconds{path=%q}`, opts.Path)),
		fileSize:      fileSizeOf(opts.Path),
	}

	go s.runWriter()
	return s
}

// fileSizes holds the last written size per data file, exposed as a gauge.
var fileSizes = xsync.NewMapOf[string, *atomic.Uint64]()

// fileSizeOf returns the size cell of path. Stores on the same path share it.
func fileSizeOf(path string) *atomic.Uint64 {
	size, loaded := fileSizes.LoadOrCompute(path, func() *atomic.Uint64 {
		return new(atomic.Uint64)
	})
	if !loaded {
		metrics.GetOrCreateGauge(fmt.Sprintf(`dconf_fstore_file_size_bytes{path=%q}`, path), func() float64 {
			return float64(size.Load())
		})
	}
	return size
}

// Path returns the path of the data file.
func (s *Store) Path() string {
	return s.path
}

// --------------------------------------------------------------------------
// Initialization
// --------------------------------------------------------------------------

var errClosed = store.NewError(store.KindConfigStore, "store is closed")

// ensureReady makes sure the data file has been created or loaded. Concurrent
// callers share a single attempt. A failed attempt leaves the store uninitialized
// so that the next call retries.
func (s *Store) ensureReady() error {
	if s.closed.Load() {
		return errClosed
	}
	if s.state.Load() == stateReady {
		return nil
	}

	_, err, _ := s.group.Do("init", func() (interface{}, error) {
		if s.state.Load() == stateReady {
			return nil, nil
		}
		s.state.Store(stateInitializing)

		data, err := s.load()
		if err != nil {
			s.state.Store(stateUninitialized)
			log.Errorf("failed to initialize file store %s: %v", s.path, err)
			return nil, err
		}

		s.mu.Lock()
		s.data = data
		s.mu.Unlock()

		s.state.Store(stateReady)
		log.Debugf("file store %s ready with %d keys", s.path, len(data))
		return nil, nil
	})
	return err
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store) Get(_ context.Context, key string) (value.Value, error) {
	if err := store.CheckKey(key); err != nil {
		return value.Null(), err
	}
	if err := s.ensureReady(); err != nil {
		return value.Null(), err
	}

	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return value.Null(), nil
	}

	v, err := value.Decode(raw)
	if err != nil {
		return value.Null(), store.WrapError(store.KindSerialization, "failed to decode value of key "+key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, v value.Value) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	raw, err := value.Encode(v, false)
	if err != nil {
		return false, store.WrapError(store.KindSerialization, "failed to encode value of key "+key, err)
	}
	if err := s.ensureReady(); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false, errClosed
	}
	s.data[key] = raw
	seq := s.enqueueLocked()
	s.mu.Unlock()

	s.awaitJob(ctx, seq)
	return true, nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	if err := s.ensureReady(); err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false, errClosed
	}
	if _, ok := s.data[key]; !ok {
		s.mu.Unlock()
		return false, nil
	}
	delete(s.data, key)
	seq := s.enqueueLocked()
	s.mu.Unlock()

	s.awaitJob(ctx, seq)
	return true, nil
}

func (s *Store) Has(_ context.Context, key string) (bool, error) {
	if err := store.CheckKey(key); err != nil {
		return false, err
	}
	if err := s.ensureReady(); err != nil {
		return false, err
	}

	s.mu.RLock()
	_, ok := s.data[key]
	s.mu.RUnlock()
	return ok, nil
}

// Close stops accepting changes, waits until every queued job has been written
// and stops the writer. Operations after Close fail. Close is idempotent.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed.Store(true)
		s.queue.Close()
		s.mu.Unlock()

		<-s.writerDone
		log.Debugf("file store %s closed", s.path)
	})
	return nil
}

// Flush blocks until every change made before the call has been persisted (or
// its persistence has failed), or until ctx is done.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	seq := s.submitted
	s.mu.RUnlock()
	return s.waitFor(ctx, seq)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// enqueueLocked submits a persistence job. The caller must hold mu for writing,
// this keeps queue order equal to the order of the changes.
func (s *Store) enqueueLocked() uint64 {
	s.submitted++
	seq := s.submitted
	s.queue.Push(&writeJob{seq: seq})
	return seq
}

// awaitJob waits for job seq if WaitForWrite is enabled. The change is already
// visible in memory, so a done ctx only ends the wait.
func (s *Store) awaitJob(ctx context.Context, seq uint64) {
	if !s.wait {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_ = s.waitFor(ctx, seq)
}

// waitFor blocks until the writer has completed job seq.
func (s *Store) waitFor(ctx context.Context, seq uint64) error {
	for {
		s.progressMu.Lock()
		if s.completed >= seq {
			s.progressMu.Unlock()
			return nil
		}
		ch := s.progressCh
		s.progressMu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// markCompleted records that job seq has run and wakes all waiters.
func (s *Store) markCompleted(seq uint64) {
	s.progressMu.Lock()
	s.completed = seq
	close(s.progressCh)
	s.progressCh = make(chan struct{})
	s.progressMu.Unlock()
}
