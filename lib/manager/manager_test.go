package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/store/fstore"
	"github.com/ValentinKolb/dConf/lib/store/mstore"
	"github.com/ValentinKolb/dConf/lib/value"
	"github.com/spf13/afero"
)

// recordingSink records all events as "level: msg"
type recordingSink struct {
	mu     sync.Mutex
	events []string
	args   [][]interface{}
}

func (r *recordingSink) add(level, msg string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf("%s: %s", level, msg))
	r.args = append(r.args, args)
}

func (r *recordingSink) Debug(msg string, args ...interface{}) { r.add("debug", msg, args) }
func (r *recordingSink) Error(msg string, args ...interface{}) { r.add("error", msg, args) }

// failingStore fails every operation with err and counts Close calls
type failingStore struct {
	err    error
	closes int
}

func (f *failingStore) Get(context.Context, string) (value.Value, error) { return value.Null(), f.err }
func (f *failingStore) Set(context.Context, string, value.Value) (bool, error) {
	return false, f.err
}
func (f *failingStore) Delete(context.Context, string) (bool, error) { return false, f.err }
func (f *failingStore) Has(context.Context, string) (bool, error)    { return false, f.err }
func (f *failingStore) Close() error {
	f.closes++
	return nil
}

func TestForwarding(t *testing.T) {
	sink := &recordingSink{}
	m := New(mstore.NewStore(), sink)
	ctx := context.Background()

	ok, err := m.Set(ctx, "theme", value.String("dark"))
	if err != nil || !ok {
		t.Fatalf("Failed to set: ok=%v err=%v", ok, err)
	}
	if got, _ := m.Get(ctx, "theme"); !got.Equal(value.String("dark")) {
		t.Errorf("Expected dark, got %s", got)
	}
	if found, _ := m.Has(ctx, "theme"); !found {
		t.Errorf("Expected key to exist")
	}
	if removed, _ := m.Delete(ctx, "theme"); !removed {
		t.Errorf("Expected key to be removed")
	}
	if got, _ := m.Get(ctx, "theme"); !got.IsNull() {
		t.Errorf("Expected null after delete, got %s", got)
	}

	expected := []string{
		"debug: setting configuration value",
		"debug: configuration value set",
		"debug: getting configuration value",
		"debug: configuration value retrieved",
		"debug: checking configuration value existence",
		"debug: configuration value existence checked",
		"debug: deleting configuration value",
		"debug: configuration value deleted",
		"debug: getting configuration value",
		"debug: configuration value retrieved",
	}
	if len(sink.events) != len(expected) {
		t.Fatalf("Expected %d events, got %d: %v", len(expected), len(sink.events), sink.events)
	}
	for i := range expected {
		if sink.events[i] != expected[i] {
			t.Errorf("Event %d: expected %q, got %q", i, expected[i], sink.events[i])
		}
	}

	// every event names the key
	for i, args := range sink.args {
		if len(args) < 2 || args[0] != "key" || args[1] != "theme" {
			t.Errorf("Event %q does not carry the key: %v", sink.events[i], args)
		}
	}
}

func TestErrorsPassThroughUnchanged(t *testing.T) {
	storeErr := store.NewError(store.KindConnection, "connection refused")
	sink := &recordingSink{}
	m := New(&failingStore{err: storeErr}, sink)
	ctx := context.Background()

	ops := map[string]func() error{
		"get":    func() error { _, err := m.Get(ctx, "a"); return err },
		"set":    func() error { _, err := m.Set(ctx, "a", value.Number(1)); return err },
		"delete": func() error { _, err := m.Delete(ctx, "a"); return err },
		"has":    func() error { _, err := m.Has(ctx, "a"); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			sink.events = nil
			err := op()
			if err != storeErr {
				t.Errorf("Expected the identical store error, got %v", err)
			}
			if len(sink.events) != 2 {
				t.Fatalf("Expected a start and an error event, got %v", sink.events)
			}
			if sink.events[1][:6] != "error:" {
				t.Errorf("Expected the second event to be an error, got %q", sink.events[1])
			}
		})
	}
}

func TestNilSink(t *testing.T) {
	m := New(mstore.NewStore(), nil)
	if _, err := m.Set(context.Background(), "a", value.Bool(true)); err != nil {
		t.Errorf("Expected a manager without sink to work, got %v", err)
	}
}

func TestCloseOnce(t *testing.T) {
	s := &failingStore{}
	m := New(s, nil)

	for i := 0; i < 3; i++ {
		if err := m.Close(); err != nil {
			t.Errorf("Failed to close: %v", err)
		}
	}
	if s.closes != 1 {
		t.Errorf("Expected the store to be closed once, got %d", s.closes)
	}

	// stores without resources are fine too
	if err := New(mstore.NewStore(), nil).Close(); err != nil {
		t.Errorf("Expected close of a memory store to be a no-op, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()

	testCases := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{"default", Options{}, nil},
		{"memory", Options{StoreType: StoreMemory}, nil},
		{"file", Options{StoreType: StoreFile, File: fstore.Options{Path: "/cfg/dynamic.json", Fs: fs}}, nil},
		{"remote without client", Options{StoreType: StoreRemote}, store.ErrConnection},
		{"redis without client", Options{StoreType: StoreRedis}, store.ErrConnection},
		{"unknown", Options{StoreType: "etcd"}, store.ErrConfigStore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Open(tc.opts)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Expected %v, got %v", tc.wantErr, err)
				}
				if m != nil {
					t.Errorf("Expected no manager on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to open: %v", err)
			}
			defer m.Close()

			ctx := context.Background()
			if _, err := m.Set(ctx, "a", value.Number(1)); err != nil {
				t.Errorf("Failed to set: %v", err)
			}
			if got, _ := m.Get(ctx, "a"); !got.Equal(value.Number(1)) {
				t.Errorf("Expected 1, got %s", got)
			}
		})
	}

	if exists, _ := afero.Exists(fs, "/cfg/dynamic.json"); !exists {
		t.Errorf("Expected the file backend to create its data file")
	}
}
