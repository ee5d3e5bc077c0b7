// Package store defines the adapter contract shared by all configuration backends
// and the error taxonomy every backend reports its failures with.
//
// The package focuses on:
//   - A unified interface (IStore) for get, set, delete and has across backends
//   - An optional ICloser capability for backends holding resources
//   - A single tagged error type (*Error) so callers match on kind, not on text
//
// Key Components:
//
//   - IStore Interface: The core abstraction. Values are value.Value instances
//     (the JSON data model); keys are opaque, non-empty strings. Applications can
//     switch between backends without code changes.
//
//   - Error System: *Error carries a Kind (KindConfigStore, KindConnection,
//     KindSerialization), a message and the preserved cause. Use errors.Is with
//     ErrConfigStore, ErrConnection or ErrSerialization to classify a failure:
//
//     if errors.Is(err, store.ErrSerialization) { ... }
//
// Implementations:
//
//	- Memory Store (mstore): keeps encoded values in a concurrent map for the
//	  lifetime of the process. Available in "github.com/ValentinKolb/dConf/lib/store/mstore".
//
//	- File Store (fstore): keeps an in-memory mirror of a single JSON file and
//	  persists every change through an ordered, crash-safe write queue.
//	  Available in "github.com/ValentinKolb/dConf/lib/store/fstore".
//
//	- Remote Store (rstore): delegates to an externally connected client (Redis or
//	  a dConf server) with key namespacing and error translation.
//	  Available in "github.com/ValentinKolb/dConf/lib/store/rstore".
//
// A shared conformance suite for implementations lives in
// "github.com/ValentinKolb/dConf/lib/store/testing".
package store
