// Package testing provides a standardised conformance suite for configuration
// backends that satisfy the store.IStore interface.
//
// The suite checks the behaviour every backend must share: round trips of all
// JSON value kinds, last-write-wins overwrites, delete and has semantics (a stored
// null still exists), opaque dotted keys, serialization failures that leave the
// store unchanged and rejection of empty keys.
//
// Example usage:
//
//	factory := func() store.IStore {
//		return mstore.NewStore()
//	}
//
//	storetesting.RunStoreTests(t, "MemoryStore", factory)
package testing
