package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/VictoriaMetrics/metrics"
	"github.com/hashicorp/go-hclog"
)

// Sink receives the events of a Manager. hclog.Logger satisfies it.
type Sink interface {
	Debug(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Manager is the application facing facade over a single store. Every call is
// forwarded to the store, surrounded by log events and counted. Errors of the
// store are returned unchanged.
type Manager struct {
	store     store.IStore
	sink      Sink
	closeOnce sync.Once
	closeErr  error
}

// New creates a manager for s. A nil sink discards all events.
func New(s store.IStore, sink Sink) *Manager {
	if sink == nil {
		sink = hclog.NewNullLogger()
	}
	return &Manager{
		store: s,
		sink:  sink,
	}
}

// Store returns the underlying store.
func (m *Manager) Store() store.IStore {
	return m.store
}

// Get returns the value of key, or null if the key does not exist.
func (m *Manager) Get(ctx context.Context, key string) (value.Value, error) {
	m.sink.Debug("getting configuration value", "key", key)
	start := time.Now()

	v, err := m.store.Get(ctx, key)
	observe("get", start, err)
	if err != nil {
		m.sink.Error("failed to get configuration value", "key", key, "error", err)
		return v, err
	}

	m.sink.Debug("configuration value retrieved", "key", key, "value", v.String())
	return v, nil
}

// Set stores v under key and reports whether the store accepted it.
func (m *Manager) Set(ctx context.Context, key string, v value.Value) (bool, error) {
	m.sink.Debug("setting configuration value", "key", key, "value", v.String())
	start := time.Now()

	ok, err := m.store.Set(ctx, key, v)
	observe("set", start, err)
	if err != nil {
		m.sink.Error("failed to set configuration value", "key", key, "value", v.String(), "error", err)
		return ok, err
	}

	m.sink.Debug("configuration value set", "key", key, "result", ok)
	return ok, nil
}

// Delete removes key and reports whether it existed.
func (m *Manager) Delete(ctx context.Context, key string) (bool, error) {
	m.sink.Debug("deleting configuration value", "key", key)
	start := time.Now()

	removed, err := m.store.Delete(ctx, key)
	observe("delete", start, err)
	if err != nil {
		m.sink.Error("failed to delete configuration value", "key", key, "error", err)
		return removed, err
	}

	m.sink.Debug("configuration value deleted", "key", key, "result", removed)
	return removed, nil
}

// Has reports whether key exists.
func (m *Manager) Has(ctx context.Context, key string) (bool, error) {
	m.sink.Debug("checking configuration value existence", "key", key)
	start := time.Now()

	found, err := m.store.Has(ctx, key)
	observe("has", start, err)
	if err != nil {
		m.sink.Error("failed to check configuration value existence", "key", key, "error", err)
		return found, err
	}

	m.sink.Debug("configuration value existence checked", "key", key, "result", found)
	return found, nil
}

// Close closes the underlying store exactly once. Later calls return the
// result of the first one.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = store.Close(m.store)
		if m.closeErr != nil {
			m.sink.Error("failed to close configuration store", "error", m.closeErr)
		}
	})
	return m.closeErr
}

// observe counts an operation and records its duration.
func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		if kind, ok := store.KindOf(err); ok {
			status = kind.String()
		}
	}
	metrics.GetOrCreateCounter(fmt.Sprintf(`dconf_manager_ops_total{op=%q,status=%q}`, op, status)).Inc()
	metrics.GetOrCreateHistogram(fmt.Sprintf(`dconf_manager_op_duration_seconds{op=%q}`, op)).UpdateDuration(start)
}
