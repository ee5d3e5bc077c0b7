package value

import (
	"sort"
)

// --------------------------------------------------------------------------
// Kind
// --------------------------------------------------------------------------

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	KindNull   Kind = iota // JSON null (also the zero Value)
	KindBool               // JSON true / false
	KindNumber             // JSON number, stored as float64
	KindString             // JSON string
	KindArray              // ordered sequence of Values
	KindObject             // mapping of string to Value
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Value
// --------------------------------------------------------------------------

// Value is a closed representation of everything the JSON data model can express.
// Only the field matching kind is meaningful. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []Value
	o    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value. Non-finite numbers are accepted here but rejected by Encode.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// Object returns an object backed by m. The map is not copied.
func Object(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindObject, o: m}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsArray() ([]Value, bool) { return v.a, v.kind == KindArray }

func (v Value) AsObject() (map[string]Value, bool) { return v.o, v.kind == KindObject }

// Interface converts v into plain Go values: nil, bool, float64, string,
// []interface{} and map[string]interface{}. v must be acyclic.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.a))
		for i, e := range v.a {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.o))
		for k, e := range v.o {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether v and other are deeply equal. v must be acyclic.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.o) != len(other.o) {
			return false
		}
		for k, e := range v.o {
			o, ok := other.o[k]
			if !ok || !e.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns the compact JSON form of v, or a placeholder if v cannot be encoded.
func (v Value) String() string {
	b, err := Encode(v, false)
	if err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return string(b)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
