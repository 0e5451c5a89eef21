package rawvalue

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
		want any
	}{
		{"plain string", "hello", KindString, "hello"},
		{"quoted number", `"42"`, KindString, "42"},
		{"integer", "42", KindInt, int64(42)},
		{"negative integer", "-7", KindInt, int64(-7)},
		{"bool", "true", KindBool, true},
		{"float", "1.5", KindFloat, json.Number("1.5")},
		{"float with zero fraction", "1.0", KindFloat, json.Number("1.0")},
		{"float with exponent", "1.5e3", KindFloat, json.Number("1.5e3")},
		{"float with plus sign", "+1.5", KindFloat, 1.5},
		{"null", "null", KindNull, nil},
		{"tilde null", "~", KindNull, nil},
		{"uint64 overflow", "18446744073709551615", KindString, json.Number("18446744073709551615")},
		{"quoted uint64 overflow", `"18446744073709551615"`, KindString, "18446744073709551615"},
		{"sequence", "[open, closed]", KindSequence, []any{"open", "closed"}},
		{"mapping", "{a: 1, b: [x]}", KindMapping, map[string]any{"a": int64(1), "b": []any{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
			if diff := cmp.Diff(tt.want, v.Interface()); diff != "" {
				t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_MappingOrder(t *testing.T) {
	v, err := Parse([]byte("z: 1\na: 2\nm: 3\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var keys []string
	for _, p := range v.Pairs() {
		keys = append(keys, p.Key)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Alias(t *testing.T) {
	v, err := Parse([]byte("base: &b [x, y]\ncopy: *b\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := v.Pairs()[1].Value
	if got.Kind() != KindSequence || len(got.Items()) != 2 {
		t.Errorf("alias value = %#v, want two-element sequence", got)
	}
}

func TestParse_FloatKeepsSourceText(t *testing.T) {
	v, err := Parse([]byte("1.50"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v.Str() != "1.50" {
		t.Errorf("Str() = %q, want 1.50", v.Str())
	}
	if v.FloatValue() != 1.5 {
		t.Errorf("FloatValue() = %v, want 1.5", v.FloatValue())
	}
}

func TestParse_BigInt(t *testing.T) {
	v, err := Parse([]byte("18446744073709551615"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v.Str() != "18446744073709551615" {
		t.Errorf("Str() = %q, want the source digits", v.Str())
	}
	if got := v.GoString(); got != "18446744073709551615" {
		t.Errorf("GoString() = %q, want unquoted digits", got)
	}
	if got := BigInt("0x1f").Interface(); got != "0x1f" {
		t.Errorf("Interface() = %#v, want the text for a non-JSON literal", got)
	}
}

func TestValue_GoString(t *testing.T) {
	v := Mapping(
		Pair{Key: "index", Value: String("test")},
		Pair{Key: "ids", Value: Sequence(Int(1), Bool(false), Null())},
	)
	want := `{index: "test", ids: [1, false, null]}`
	if got := v.GoString(); got != want {
		t.Errorf("GoString() = %q, want %q", got, want)
	}
}

func TestValue_ZeroIsEmptyString(t *testing.T) {
	var v Value
	if v.Kind() != KindString || v.Str() != "" {
		t.Errorf("zero Value = %#v, want empty string", v)
	}
}
