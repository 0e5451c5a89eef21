// Package rawvalue holds untyped argument values read from YAML test actions.
//
// A Value is a tagged variant: a scalar (string, bool, integer, float), an
// ordered sequence of values, an opaque mapping, or null. The generator
// dispatches on Kind to coerce values into typed literals.
package rawvalue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the shape of a raw value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindSequence
	KindMapping
	KindNull
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is an untyped argument value. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string // KindString; source text for KindFloat
	num  bool   // KindString read from an integer literal outside the int64 range
	b    bool
	i    int64
	f    float64
	seq  []Value
	m    []Pair // KindMapping, in document order
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   string
	Value Value
}

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer scalar.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float scalar. The source text is the shortest
// representation of f.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// BigInt returns an integer literal too large for int64. It behaves as a
// string scalar holding text, but Interface keeps it a JSON number.
func BigInt(text string) Value { return Value{kind: KindString, str: text, num: true} }

// Sequence returns an ordered sequence.
func Sequence(items ...Value) Value { return Value{kind: KindSequence, seq: items} }

// Mapping returns a mapping with entries in the given order.
func Mapping(pairs ...Pair) Value { return Value{kind: KindMapping, m: pairs} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Kind returns the value's shape.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string of a KindString value, or the source text of a KindFloat.
func (v Value) Str() string { return v.str }

// BoolValue returns the boolean of a KindBool value.
func (v Value) BoolValue() bool { return v.b }

// IntValue returns the integer of a KindInt value.
func (v Value) IntValue() int64 { return v.i }

// FloatValue returns the float of a KindFloat value.
func (v Value) FloatValue() float64 { return v.f }

// Items returns the elements of a KindSequence value.
func (v Value) Items() []Value { return v.seq }

// Pairs returns the entries of a KindMapping value in document order.
func (v Value) Pairs() []Pair { return v.m }

// Interface converts the value into a generic document built from
// string, bool, int64, json.Number, float64, nil, []any and map[string]any.
// Floats and big integers are returned as json.Number holding their source
// text when that text is a valid JSON number, so re-encoding does not
// change them.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		if v.num && isJSONNumber(v.str) {
			return json.Number(v.str)
		}
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		if isJSONNumber(v.str) {
			return json.Number(v.str)
		}
		return v.f
	case KindSequence:
		items := make([]any, len(v.seq))
		for i, item := range v.seq {
			items[i] = item.Interface()
		}
		return items
	case KindMapping:
		m := make(map[string]any, len(v.m))
		for _, p := range v.m {
			m[p.Key] = p.Value.Interface()
		}
		return m
	default:
		return nil
	}
}

// GoString renders the value for error messages, e.g. "[open, bogus]".
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		if v.num {
			return v.str
		}
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return v.str
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.GoString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		parts := make([]string, len(v.m))
		for i, p := range v.m {
			parts[i] = p.Key + ": " + p.Value.GoString()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// isJSONNumber reports whether text is a number literal in JSON syntax.
// YAML also accepts forms such as "+1", ".5", "0x1f" and ".inf" that JSON does not.
func isJSONNumber(text string) bool {
	if text == "" || (text[0] != '-' && (text[0] < '0' || text[0] > '9')) {
		return false
	}
	return json.Valid([]byte(text))
}
