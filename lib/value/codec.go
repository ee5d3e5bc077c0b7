package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var (
	// ErrCycle is returned when a value references itself.
	ErrCycle = errors.New("value: cyclic structure")
	// ErrNonFinite is returned for NaN and infinite numbers.
	ErrNonFinite = errors.New("value: non-finite number")
	// ErrUnsupported is returned for Go values without a JSON representation (funcs, chans, ...).
	ErrUnsupported = errors.New("value: unsupported type")
	// ErrMalformed is returned when a payload is not valid JSON.
	ErrMalformed = errors.New("value: malformed json")
)

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Encode returns the JSON encoding of v. If pretty is set the output is indented
// with two spaces. Object keys are always written in sorted order.
func Encode(v Value, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, map[container]struct{}{}); err != nil {
		return nil, err
	}
	if !pretty {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// container identifies a slice or map on the current path. Slices are keyed by
// data pointer and length, since a subslice shares the pointer of its parent.
// Maps use a length of -1.
type container struct {
	ptr uintptr
	n   int
}

// encode writes v to buf. seen holds the containers on the current path, a
// container that is reachable twice without being its own ancestor is fine.
func encode(buf *bytes.Buffer, v Value, seen map[container]struct{}) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, v.n)
		}
		b, err := json.Marshal(v.n)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindString:
		b, _ := json.Marshal(v.s)
		buf.Write(b)
	case KindArray:
		if len(v.a) > 0 {
			key := container{reflect.ValueOf(v.a).Pointer(), len(v.a)}
			if _, ok := seen[key]; ok {
				return ErrCycle
			}
			seen[key] = struct{}{}
			defer delete(seen, key)
		}
		buf.WriteByte('[')
		for i, e := range v.a {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, e, seen); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		if len(v.o) > 0 {
			key := container{reflect.ValueOf(v.o).Pointer(), -1}
			if _, ok := seen[key]; ok {
				return ErrCycle
			}
			seen[key] = struct{}{}
			defer delete(seen, key)
		}
		buf.WriteByte('{')
		for i, k := range sortedKeys(v.o) {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encode(buf, v.o[k], seen); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupported, v.kind)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (v Value) MarshalJSON() ([]byte, error) {
	return Encode(v, false)
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// Decode parses a JSON document into a Value.
func Decode(b []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromDecoded(raw), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *Value) UnmarshalJSON(b []byte) error {
	decoded, err := Decode(b)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// fromDecoded converts the output of json.Unmarshal into a Value.
func fromDecoded(raw interface{}) Value {
	switch t := raw.(type) {
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case string:
		return String(t)
	case []interface{}:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = fromDecoded(e)
		}
		return Array(elems...)
	case map[string]interface{}:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = fromDecoded(e)
		}
		return Object(m)
	default:
		return Null()
	}
}

// --------------------------------------------------------------------------
// Conversion from plain Go values
// --------------------------------------------------------------------------

// FromAny converts a plain Go value into a Value. Common shapes are converted
// directly; anything else is routed through encoding/json, so e.g. a time.Time
// becomes its RFC 3339 string and structs become objects.
func FromAny(x interface{}) (Value, error) {
	return fromAny(x, map[container]struct{}{})
}

func fromAny(x interface{}, seen map[container]struct{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return finite(f)
	case json.RawMessage:
		return Decode(t)
	case []Value:
		return Array(t...), nil
	case map[string]Value:
		return Object(t), nil
	case []interface{}:
		if len(t) > 0 {
			key := container{reflect.ValueOf(t).Pointer(), len(t)}
			if _, ok := seen[key]; ok {
				return Value{}, ErrCycle
			}
			seen[key] = struct{}{}
			defer delete(seen, key)
		}
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := fromAny(e, seen)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]interface{}:
		if len(t) > 0 {
			key := container{reflect.ValueOf(t).Pointer(), -1}
			if _, ok := seen[key]; ok {
				return Value{}, ErrCycle
			}
			seen[key] = struct{}{}
			defer delete(seen, key)
		}
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := fromAny(e, seen)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Object(m), nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return Value{}, classifyMarshalError(err)
		}
		return Decode(b)
	}
}

func finite(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	return Number(f), nil
}

// classifyMarshalError maps encoding/json failures onto the package errors.
func classifyMarshalError(err error) error {
	var typeErr *json.UnsupportedTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	var valueErr *json.UnsupportedValueError
	if errors.As(err, &valueErr) {
		if strings.Contains(valueErr.Str, "cycle") {
			return fmt.Errorf("%w: %v", ErrCycle, err)
		}
		return fmt.Errorf("%w: %v", ErrNonFinite, err)
	}
	return fmt.Errorf("%w: %v", ErrUnsupported, err)
}
