package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// Kind classifies a store error. Every kind is a specialisation of KindConfigStore.
type Kind uint8

const (
	KindConfigStore   Kind = iota // 0: generic store failure (also used for unreadable data files)
	KindConnection                // 1: backend unreachable, misconfigured or missing its client
	KindSerialization             // 2: value cannot be encoded or stored payload cannot be decoded
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConfigStore:
		return "ConfigStoreError"
	case KindConnection:
		return "ConnectionError"
	case KindSerialization:
		return "SerializationError"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the error type returned by all backends. It carries a kind
// discriminator, a message and optionally the underlying cause.
type Error struct {
	Kind Kind   // The error kind
	Msg  string // The error message
	Err  error  // The cause, may be nil
}

// Sentinels for errors.Is. ErrConfigStore matches every store error.
var (
	ErrConfigStore   = &Error{Kind: KindConfigStore}
	ErrConnection    = &Error{Kind: KindConnection}
	ErrSerialization = &Error{Kind: KindSerialization}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches e against another *Error by kind. A target of kind KindConfigStore
// matches every store error since it is the base kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == KindConfigStore || t.Kind == e.Kind
}

// NewError creates a new store error with the given kind and message.
func NewError(kind Kind, msg string) *Error {
	return &Error{
		Kind: kind,
		Msg:  msg,
	}
}

// WrapError creates a new store error that preserves cause.
func WrapError(kind Kind, msg string, cause error) *Error {
	return &Error{
		Kind: kind,
		Msg:  msg,
		Err:  cause,
	}
}

// KindOf returns the kind of the first *Error in err's chain.
// The boolean is false if err is not a store error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindConfigStore, false
}
