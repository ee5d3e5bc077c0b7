// Package value implements the data model of stored configuration values.
//
// A Value is a closed sum type over the JSON data model: null, bool, number,
// string, array and object. Every backend of the store package persists values
// in their JSON encoding, so the round trip semantics are identical no matter
// where a value lives.
//
// Key Components:
//
//   - Value: the immutable-by-convention variant type. The zero Value is null.
//
//   - Encode / Decode: conversion between a Value and its JSON bytes. Encode is
//     total over acyclic values with finite numbers and reports ErrCycle or
//     ErrNonFinite otherwise. Decode reports ErrMalformed for invalid input.
//
//   - FromAny: conversion from plain Go values (maps, slices, numbers, structs,
//     time.Time, ...). Values without a JSON representation are rejected with
//     ErrUnsupported.
//
// Usage Example:
//
//	v, err := value.FromAny(map[string]interface{}{"enabled": true, "count": 42})
//	b, err := value.Encode(v, true)
//	back, err := value.Decode(b)
//	back.Equal(v) // true
package value
