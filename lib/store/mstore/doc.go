// Package mstore provides the transient configuration backend.
//
// Values live in a concurrent map (xsync.MapOf) for the lifetime of the process.
// Each value is stored in its JSON-encoded form, so every Set fails with a
// serialization error for values that cannot be encoded (cycles, non-finite
// numbers) and every Get returns a fresh copy. There is no I/O and nothing to close.
//
// Usage:
//
//	s := mstore.NewStore()
//	_, err := s.Set(ctx, "theme", value.String("dark"))
package mstore
