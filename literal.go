package callgen

import (
	"strconv"
	"strings"
)

// LiteralKind identifies the category of a typed literal.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralBool
	LiteralInt   // Signed integer (see IntLiteral.BitSize)
	LiteralFloat // Floating point (see FloatLiteral.BitSize)
	LiteralEnum
	LiteralList
	LiteralDocument // Canonical JSON text of a request body document
)

// String returns the string representation of the literal kind.
func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralEnum:
		return "enum"
	case LiteralList:
		return "list"
	case LiteralDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Literal is a typed value ready to be rendered by a language backend.
// The set of implementations is closed.
type Literal interface {
	// Kind returns the literal's category.
	Kind() LiteralKind

	// GoString renders the literal for diagnostics.
	GoString() string

	literal()
}

type literalBase struct{}

func (literalBase) literal() {}

// StringLiteral is a string value.
type StringLiteral struct {
	literalBase
	Value string
}

// Kind returns LiteralString.
func (l *StringLiteral) Kind() LiteralKind { return LiteralString }

func (l *StringLiteral) GoString() string { return strconv.Quote(l.Value) }

// BoolLiteral is a boolean value.
type BoolLiteral struct {
	literalBase
	Value bool
}

// Kind returns LiteralBool.
func (l *BoolLiteral) Kind() LiteralKind { return LiteralBool }

func (l *BoolLiteral) GoString() string { return strconv.FormatBool(l.Value) }

// IntLiteral is a signed integer of a declared width.
type IntLiteral struct {
	literalBase
	Value int64

	// BitSize is 32 or 64.
	BitSize int
}

// Kind returns LiteralInt.
func (l *IntLiteral) Kind() LiteralKind { return LiteralInt }

func (l *IntLiteral) GoString() string {
	return strconv.FormatInt(l.Value, 10) + "i" + strconv.Itoa(l.BitSize)
}

// FloatLiteral is a floating point number of a declared width.
type FloatLiteral struct {
	literalBase
	Value float64

	// BitSize is 32 or 64.
	BitSize int
}

// Kind returns LiteralFloat.
func (l *FloatLiteral) Kind() LiteralKind { return LiteralFloat }

func (l *FloatLiteral) GoString() string {
	return strconv.FormatFloat(l.Value, 'g', -1, l.BitSize) + "f" + strconv.Itoa(l.BitSize)
}

// EnumLiteral selects one variant of a generated enum type.
type EnumLiteral struct {
	literalBase

	// Type is the generated enum type name, e.g. "ExpandWildcards".
	Type string `json:"type"`

	// Variant is the generated variant name, e.g. "Open".
	Variant string `json:"variant"`

	// Value is the wire value the variant stands for, e.g. "open".
	Value string `json:"value"`
}

// Kind returns LiteralEnum.
func (l *EnumLiteral) Kind() LiteralKind { return LiteralEnum }

func (l *EnumLiteral) GoString() string { return l.Type + "::" + l.Variant }

// ListLiteral is an ordered list of literals.
type ListLiteral struct {
	literalBase
	Elements []Literal
}

// Kind returns LiteralList.
func (l *ListLiteral) Kind() LiteralKind { return LiteralList }

func (l *ListLiteral) GoString() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.GoString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DocumentLiteral is a JSON document in canonical form.
type DocumentLiteral struct {
	literalBase

	// JSON is the compact encoding, with mapping keys sorted.
	JSON string
}

// Kind returns LiteralDocument.
func (l *DocumentLiteral) Kind() LiteralKind { return LiteralDocument }

func (l *DocumentLiteral) GoString() string { return "json!(" + l.JSON + ")" }

// Str returns a StringLiteral.
func Str(s string) *StringLiteral { return &StringLiteral{Value: s} }

// Bool returns a BoolLiteral.
func Bool(b bool) *BoolLiteral { return &BoolLiteral{Value: b} }

// Int32 returns a 32-bit IntLiteral.
func Int32(i int32) *IntLiteral { return &IntLiteral{Value: int64(i), BitSize: 32} }

// Int64 returns a 64-bit IntLiteral.
func Int64(i int64) *IntLiteral { return &IntLiteral{Value: i, BitSize: 64} }

// Float32 returns a 32-bit FloatLiteral.
func Float32(f float32) *FloatLiteral { return &FloatLiteral{Value: float64(f), BitSize: 32} }

// Float64 returns a 64-bit FloatLiteral.
func Float64(f float64) *FloatLiteral { return &FloatLiteral{Value: f, BitSize: 64} }

// Enum returns an EnumLiteral.
func Enum(typ, variant, value string) *EnumLiteral {
	return &EnumLiteral{Type: typ, Variant: variant, Value: value}
}

// List returns a ListLiteral.
func List(elements ...Literal) *ListLiteral {
	return &ListLiteral{Elements: elements}
}

// Document returns a DocumentLiteral.
func Document(json string) *DocumentLiteral { return &DocumentLiteral{JSON: json} }
