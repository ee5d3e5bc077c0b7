package testing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/value"
)

// StoreFactory is a function that creates a new, empty instance of an IStore implementation
type StoreFactory func() store.IStore

// RunStoreTests runs the conformance test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("OpaqueKeys", func(t *testing.T) {
			testOpaqueKeys(t, factory())
		})

		t.Run("ComplexValues", func(t *testing.T) {
			testComplexValues(t, factory())
		})

		t.Run("SerializationError", func(t *testing.T) {
			testSerializationError(t, factory())
		})

		t.Run("EmptyKey", func(t *testing.T) {
			testEmptyKey(t, factory())
		})

		t.Run("Concurrent", func(t *testing.T) {
			testConcurrent(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func closeStore(t *testing.T, s store.IStore) {
	if err := store.Close(s); err != nil {
		t.Errorf("Failed to close store: %v", err)
	}
}

func mustSet(t *testing.T, s store.IStore, key string, v value.Value) {
	t.Helper()
	ok, err := s.Set(context.Background(), key, v)
	if err != nil {
		t.Fatalf("Failed to set key %q: %v", key, err)
	}
	if !ok {
		t.Fatalf("Expected set of key %q to be accepted", key)
	}
}

func mustGet(t *testing.T, s store.IStore, key string) value.Value {
	t.Helper()
	v, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Failed to get key %q: %v", key, err)
	}
	return v
}

func mustHas(t *testing.T, s store.IStore, key string) bool {
	t.Helper()
	found, err := s.Has(context.Background(), key)
	if err != nil {
		t.Fatalf("Failed to check key %q: %v", key, err)
	}
	return found
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, s store.IStore) {
	defer closeStore(t, s)

	testCases := []struct {
		key string
		val value.Value
	}{
		{"theme", value.String("dark")},
		{"maxUploadSize", value.Number(10485760)},
		{"debug", value.Bool(true)},
		{"ratio", value.Number(0.25)},
		{"tags", value.Array(value.String("a"), value.String("b"))},
		{"empty", value.String("")},
	}

	for _, tc := range testCases {
		mustSet(t, s, tc.key, tc.val)
	}
	for _, tc := range testCases {
		if got := mustGet(t, s, tc.key); !got.Equal(tc.val) {
			t.Errorf("Expected %s for key %q, got %s", tc.val, tc.key, got)
		}
	}

	if got := mustGet(t, s, "nonexistent-key"); !got.IsNull() {
		t.Errorf("Expected null for a missing key, got %s", got)
	}
}

func testOverwrite(t *testing.T, s store.IStore) {
	defer closeStore(t, s)

	mustSet(t, s, "theme", value.String("dark"))
	mustSet(t, s, "theme", value.String("light"))

	if got := mustGet(t, s, "theme"); !got.Equal(value.String("light")) {
		t.Errorf("Expected the last write to win, got %s", got)
	}

	// type changes are allowed
	mustSet(t, s, "theme", value.Number(3))
	if got := mustGet(t, s, "theme"); !got.Equal(value.Number(3)) {
		t.Errorf("Expected 3 after overwrite with a number, got %s", got)
	}
}

func testDelete(t *testing.T, s store.IStore) {
	defer closeStore(t, s)
	ctx := context.Background()

	mustSet(t, s, "feature.beta", value.Bool(true))

	removed, err := s.Delete(ctx, "feature.beta")
	if err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}
	if !removed {
		t.Errorf("Expected delete of an existing key to return true")
	}

	if mustHas(t, s, "feature.beta") {
		t.Errorf("Expected key to be gone after delete")
	}
	if got := mustGet(t, s, "feature.beta"); !got.IsNull() {
		t.Errorf("Expected null after delete, got %s", got)
	}

	removed, err = s.Delete(ctx, "feature.beta")
	if err != nil {
		t.Fatalf("Expected deleting a missing key not to fail, got %v", err)
	}
	if removed {
		t.Errorf("Expected delete of a missing key to return false")
	}
}

func testHas(t *testing.T, s store.IStore) {
	defer closeStore(t, s)

	if mustHas(t, s, "missing") {
		t.Errorf("Expected missing key to not exist")
	}

	mustSet(t, s, "present", value.Number(1))
	if !mustHas(t, s, "present") {
		t.Errorf("Expected key to exist after set")
	}

	// existence is independent of the stored value
	mustSet(t, s, "nothing", value.Null())
	if !mustHas(t, s, "nothing") {
		t.Errorf("Expected key holding null to exist")
	}
	if got := mustGet(t, s, "nothing"); !got.IsNull() {
		t.Errorf("Expected null, got %s", got)
	}

	mustSet(t, s, "off", value.Bool(false))
	if !mustHas(t, s, "off") {
		t.Errorf("Expected key holding false to exist")
	}
}

func testOpaqueKeys(t *testing.T, s store.IStore) {
	defer closeStore(t, s)

	parent := value.Object(map[string]value.Value{"rateLimit": value.Number(1)})
	mustSet(t, s, "api", parent)
	mustSet(t, s, "api.rateLimit", value.Number(100))

	if got := mustGet(t, s, "api.rateLimit"); !got.Equal(value.Number(100)) {
		t.Errorf("Expected 100 for the dotted key, got %s", got)
	}
	if got := mustGet(t, s, "api"); !got.Equal(parent) {
		t.Errorf("Expected the parent key to be untouched, got %s", got)
	}

	if mustHas(t, s, "api.other") {
		t.Errorf("Expected no key derived from an object field")
	}

	keys := []string{"with space", "ümlaut", "a/b\\c", "config:nested", "{}"}
	for i, k := range keys {
		mustSet(t, s, k, value.Number(float64(i)))
	}
	for i, k := range keys {
		if got := mustGet(t, s, k); !got.Equal(value.Number(float64(i))) {
			t.Errorf("Expected %d for key %q, got %s", i, k, got)
		}
	}
}

func testComplexValues(t *testing.T, s store.IStore) {
	defer closeStore(t, s)

	v := value.Object(map[string]value.Value{
		"name":    value.String("service"),
		"enabled": value.Bool(true),
		"limits": value.Object(map[string]value.Value{
			"rps":   value.Number(250),
			"burst": value.Number(1.5),
		}),
		"hosts": value.Array(
			value.String("a.example.com"),
			value.Object(map[string]value.Value{"port": value.Number(8080)}),
			value.Null(),
		),
		"empty": value.Object(nil),
		"list":  value.Array(),
	})

	mustSet(t, s, "service", v)
	if got := mustGet(t, s, "service"); !got.Equal(v) {
		t.Errorf("Expected complex value to round trip:\nexpected %s\ngot      %s", v, got)
	}
}

func testSerializationError(t *testing.T, s store.IStore) {
	defer closeStore(t, s)
	ctx := context.Background()

	mustSet(t, s, "circular", value.String("before"))

	m := map[string]value.Value{"name": value.String("test")}
	m["self"] = value.Object(m)

	ok, err := s.Set(ctx, "circular", value.Object(m))
	if !errors.Is(err, store.ErrSerialization) {
		t.Fatalf("Expected a serialization error for a cyclic value, got ok=%v err=%v", ok, err)
	}
	if ok {
		t.Errorf("Expected a failed set to not report success")
	}

	if got := mustGet(t, s, "circular"); !got.Equal(value.String("before")) {
		t.Errorf("Expected the previous value to be unchanged, got %s", got)
	}
}

func testEmptyKey(t *testing.T, s store.IStore) {
	defer closeStore(t, s)
	ctx := context.Background()

	if _, err := s.Set(ctx, "", value.Number(1)); !errors.Is(err, store.ErrConfigStore) {
		t.Errorf("Expected set with empty key to fail, got %v", err)
	}
	if _, err := s.Get(ctx, ""); !errors.Is(err, store.ErrConfigStore) {
		t.Errorf("Expected get with empty key to fail, got %v", err)
	}
	if _, err := s.Delete(ctx, ""); !errors.Is(err, store.ErrConfigStore) {
		t.Errorf("Expected delete with empty key to fail, got %v", err)
	}
	if _, err := s.Has(ctx, ""); !errors.Is(err, store.ErrConfigStore) {
		t.Errorf("Expected has with empty key to fail, got %v", err)
	}
}

func testConcurrent(t *testing.T, s store.IStore) {
	defer closeStore(t, s)
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("worker-%d-key-%d", w, i)
				if _, err := s.Set(ctx, key, value.Number(float64(i))); err != nil {
					t.Errorf("Failed to set %q: %v", key, err)
					return
				}
				if _, err := s.Get(ctx, key); err != nil {
					t.Errorf("Failed to get %q: %v", key, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			key := fmt.Sprintf("worker-%d-key-%d", w, i)
			if got := mustGet(t, s, key); !got.Equal(value.Number(float64(i))) {
				t.Errorf("Expected %d for %q, got %s", i, key, got)
			}
		}
	}
}
