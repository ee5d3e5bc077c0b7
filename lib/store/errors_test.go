package store

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	testCases := []struct {
		err       error
		kind      Kind
		matches   []error
		unmatched []error
	}{
		{NewError(KindConfigStore, "load failed"), KindConfigStore, []error{ErrConfigStore}, []error{ErrConnection, ErrSerialization}},
		{NewError(KindConnection, "no client"), KindConnection, []error{ErrConfigStore, ErrConnection}, []error{ErrSerialization}},
		{NewError(KindSerialization, "cycle"), KindSerialization, []error{ErrConfigStore, ErrSerialization}, []error{ErrConnection}},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			for _, target := range tc.matches {
				if !errors.Is(tc.err, target) {
					t.Errorf("Expected %v to match %v", tc.err, target)
				}
			}
			for _, target := range tc.unmatched {
				if errors.Is(tc.err, target) {
					t.Errorf("Expected %v not to match %v", tc.err, target)
				}
			}

			// kind survives wrapping
			wrapped := fmt.Errorf("outer: %w", tc.err)
			if kind, ok := KindOf(wrapped); !ok || kind != tc.kind {
				t.Errorf("Expected kind %s, got %s (ok=%v)", tc.kind, kind, ok)
			}
		})
	}
}

func TestErrorCause(t *testing.T) {
	err := WrapError(KindConnection, `failed to get key "a"`, io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected the cause to be preserved")
	}
	expected := `ConnectionError: failed to get key "a": unexpected EOF`
	if err.Error() != expected {
		t.Errorf("Expected message %q, got %q", expected, err.Error())
	}

	if _, ok := KindOf(io.EOF); ok {
		t.Errorf("A plain error should not be reported as a store error")
	}
}

func TestCheckKey(t *testing.T) {
	if err := CheckKey("api.rateLimit"); err != nil {
		t.Errorf("Expected dotted key to be valid, got %v", err)
	}
	if err := CheckKey(""); !errors.Is(err, ErrConfigStore) {
		t.Errorf("Expected empty key to be rejected, got %v", err)
	}
}

type closingStore struct {
	IStore
	closed int
}

func (c *closingStore) Close() error {
	c.closed++
	return nil
}

type plainStore struct{ IStore }

func TestClose(t *testing.T) {
	c := &closingStore{}
	if err := Close(c); err != nil || c.closed != 1 {
		t.Errorf("Expected Close to be forwarded once, got closed=%d err=%v", c.closed, err)
	}
	if err := Close(plainStore{}); err != nil {
		t.Errorf("Expected Close on a store without resources to be a no-op, got %v", err)
	}
}
