package value

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		in   Value
	}{
		{"Null", Null()},
		{"True", Bool(true)},
		{"False", Bool(false)},
		{"Integer", Number(42)},
		{"Float", Number(-3.25)},
		{"String", String("hello \"world\" <tag>")},
		{"EmptyArray", Array()},
		{"EmptyObject", Object(nil)},
		{"Mixed", Array(Number(1), String("two"), Object(map[string]Value{"three": Number(3)}), Array(Number(4), Number(5)))},
		{"Nested", Object(map[string]Value{
			"name":     String("test"),
			"settings": Object(map[string]Value{"enabled": Bool(true), "count": Number(42)}),
			"list":     Array(Number(1), Number(2), Number(3)),
			"nothing":  Null(),
		})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, pretty := range []bool{false, true} {
				b, err := Encode(tc.in, pretty)
				if err != nil {
					t.Fatalf("Failed to encode (pretty=%v): %v", pretty, err)
				}
				out, err := Decode(b)
				if err != nil {
					t.Fatalf("Failed to decode %s: %v", b, err)
				}
				if !out.Equal(tc.in) {
					t.Errorf("Value doesn't match after round trip:\nOriginal: %s\nResult: %s", tc.in, out)
				}
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	v := Object(map[string]Value{"b": Number(2), "a": Number(1), "c": Array(Bool(true))})
	b, err := Encode(v, false)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if string(b) != `{"a":1,"b":2,"c":[true]}` {
		t.Errorf("Expected sorted compact output, got %s", b)
	}

	b, err = Encode(v, true)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"a\": 1") {
		t.Errorf("Expected two-space indentation, got %s", b)
	}
}

func TestEncodeCycle(t *testing.T) {
	m := map[string]Value{"name": String("test")}
	m["self"] = Object(m)
	if _, err := Encode(Object(m), false); !errors.Is(err, ErrCycle) {
		t.Errorf("Expected ErrCycle for a self-referencing object, got %v", err)
	}

	a := make([]Value, 1)
	arr := Array(a...)
	a[0] = arr
	if _, err := Encode(arr, false); !errors.Is(err, ErrCycle) {
		t.Errorf("Expected ErrCycle for a self-referencing array, got %v", err)
	}

	// the same object reachable twice is not a cycle
	shared := Object(map[string]Value{"x": Number(1)})
	if _, err := Encode(Array(shared, shared), false); err != nil {
		t.Errorf("Expected shared (acyclic) references to encode, got %v", err)
	}
}

func TestEncodeSubsliceIsNotACycle(t *testing.T) {
	// the nested array shares its backing array with the parent
	x := make([]Value, 2)
	x[0] = Number(1)
	x[1] = Array(x[:1]...)
	b, err := Encode(Array(x...), false)
	if err != nil {
		t.Fatalf("Expected an acyclic value to encode, got %v", err)
	}
	if string(b) != "[1,[1]]" {
		t.Errorf("Expected [1,[1]], got %s", b)
	}

	// a subslice that contains itself is still a cycle
	y := make([]Value, 2)
	y[0] = Array(y[:1]...)
	if _, err := Encode(Array(y...), false); !errors.Is(err, ErrCycle) {
		t.Errorf("Expected ErrCycle for a self-containing subslice, got %v", err)
	}

	z := make([]interface{}, 2)
	z[0] = 1
	z[1] = z[:1]
	v, err := FromAny(z)
	if err != nil {
		t.Fatalf("Expected an acyclic slice to convert, got %v", err)
	}
	if !v.Equal(Array(Number(1), Array(Number(1)))) {
		t.Errorf("Expected [1,[1]], got %s", v)
	}
}

func TestEncodeNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Encode(Array(Number(f)), false); !errors.Is(err, ErrNonFinite) {
			t.Errorf("Expected ErrNonFinite for %v, got %v", f, err)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, in := range []string{"", "{", "{\"a\":}", "[1,2", "nul", "1 2"} {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Expected ErrMalformed for %q, got %v", in, err)
		}
	}
}

func TestFromAny(t *testing.T) {
	type settings struct {
		Theme string   `json:"theme"`
		Tags  []string `json:"tags"`
	}
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	testCases := []struct {
		name     string
		in       interface{}
		expected Value
	}{
		{"Nil", nil, Null()},
		{"Int", 100, Number(100)},
		{"Uint64", uint64(7), Number(7)},
		{"Float32", float32(1.5), Number(1.5)},
		{"String", "v1", String("v1")},
		{"Slice", []interface{}{1, "two", nil}, Array(Number(1), String("two"), Null())},
		{"Map", map[string]interface{}{"global": true}, Object(map[string]Value{"global": Bool(true)})},
		{"Struct", settings{Theme: "dark", Tags: []string{"a"}}, Object(map[string]Value{"theme": String("dark"), "tags": Array(String("a"))})},
		{"Time", when, String("2024-01-02T03:04:05Z")},
		{"Value", Number(3), Number(3)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := FromAny(tc.in)
			if err != nil {
				t.Fatalf("Failed to convert: %v", err)
			}
			if !v.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected, v)
			}
		})
	}
}

func TestFromAnyErrors(t *testing.T) {
	cyclic := map[string]interface{}{"name": "test"}
	cyclic["circular"] = cyclic
	if _, err := FromAny(cyclic); !errors.Is(err, ErrCycle) {
		t.Errorf("Expected ErrCycle, got %v", err)
	}

	type node struct {
		Next *node `json:"next"`
	}
	n := &node{}
	n.Next = n
	if _, err := FromAny(n); !errors.Is(err, ErrCycle) {
		t.Errorf("Expected ErrCycle for pointer cycle, got %v", err)
	}

	if _, err := FromAny(math.NaN()); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite, got %v", err)
	}

	if _, err := FromAny(func() {}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported for func, got %v", err)
	}
	if _, err := FromAny(make(chan int)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported for chan, got %v", err)
	}
}

func TestInterface(t *testing.T) {
	v := Object(map[string]Value{"list": Array(Number(1), Bool(false)), "s": String("x")})
	m, ok := v.Interface().(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map[string]interface{}, got %T", v.Interface())
	}
	list, ok := m["list"].([]interface{})
	if !ok || len(list) != 2 || list[0] != float64(1) || list[1] != false {
		t.Errorf("Unexpected list conversion: %#v", m["list"])
	}
	if m["s"] != "x" {
		t.Errorf("Expected s=x, got %v", m["s"])
	}
}

func TestAccessors(t *testing.T) {
	if _, ok := Null().AsBool(); ok {
		t.Errorf("Null should not be a bool")
	}
	if n, ok := Number(5).AsNumber(); !ok || n != 5 {
		t.Errorf("Expected number 5, got %v (%v)", n, ok)
	}
	if s, ok := String("a").AsString(); !ok || s != "a" {
		t.Errorf("Expected string a, got %v (%v)", s, ok)
	}
	var zero Value
	if !zero.IsNull() || zero.Kind() != KindNull {
		t.Errorf("The zero Value should be null")
	}
	if Number(1).Equal(String("1")) {
		t.Errorf("Values of different kinds must not be equal")
	}
}
