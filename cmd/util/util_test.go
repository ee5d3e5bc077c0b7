package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ValentinKolb/dConf/lib/value"
)

func TestParseValue(t *testing.T) {
	testCases := []struct {
		arg  string
		want value.Value
	}{
		{"42", value.Number(42)},
		{"true", value.Bool(true)},
		{"null", value.Null()},
		{`"quoted"`, value.String("quoted")},
		{"dark", value.String("dark")},
		{"{broken", value.String("{broken")},
		{`{"a": [1, "b"]}`, value.Object(map[string]value.Value{
			"a": value.Array(value.Number(1), value.String("b")),
		})},
	}

	for _, tc := range testCases {
		if got := ParseValue(tc.arg); !got.Equal(tc.want) {
			t.Errorf("ParseValue(%q): expected %s, got %s", tc.arg, tc.want, got)
		}
	}
}

func TestWriteValue(t *testing.T) {
	v := value.Object(map[string]value.Value{
		"name":  value.String("api"),
		"limit": value.Number(10),
	})

	testCases := []struct {
		format string
		want   string
	}{
		{OutputJSON, "{\n  \"limit\": 10,\n  \"name\": \"api\"\n}\n"},
		{"", "{\n  \"limit\": 10,\n  \"name\": \"api\"\n}\n"},
		{OutputYAML, "limit: 10\nname: api\n"},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer
		if err := WriteValue(&buf, v, tc.format); err != nil {
			t.Fatalf("Failed to write %q: %v", tc.format, err)
		}
		if buf.String() != tc.want {
			t.Errorf("Format %q: expected %q, got %q", tc.format, tc.want, buf.String())
		}
	}

	if err := WriteValue(&bytes.Buffer{}, v, "xml"); err == nil {
		t.Errorf("Expected an error for an unknown format")
	}
}

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		if len(line) > Wrap {
			t.Errorf("Line exceeds %d characters: %q", Wrap, line)
		}
	}
	if WrapString("short text") != "short text" {
		t.Errorf("Expected short text to stay on one line")
	}
}
