// Package manager provides the configuration manager, the single entry point an
// application uses to read and write its configuration.
//
// A Manager forwards get, set, delete and has to one store.IStore. Around every
// call it emits a debug event when the call starts, a debug event with the result
// when it completes, or an error event when it fails. A failing call returns the
// store's error itself, not a wrapped copy, so callers can match on it.
//
// Open picks the backend by name, the way a host wires the manager at startup:
//
//	m, err := manager.Open(manager.Options{
//		StoreType: manager.StoreFile,
//		File:      fstore.Options{Path: "./config/dynamic.json"},
//		Logger:    hclog.Default(),
//	})
//	defer m.Close()
package manager
