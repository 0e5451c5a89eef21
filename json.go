package callgen

import (
	"encoding/json"
	"strconv"
)

// JSON serialization support for literals.
// Every literal includes a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for StringLiteral.
func (l *StringLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{
		Kind:  LiteralString.String(),
		Value: l.Value,
	})
}

// MarshalJSON implements json.Marshaler for BoolLiteral.
func (l *BoolLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value bool   `json:"value"`
	}{
		Kind:  LiteralBool.String(),
		Value: l.Value,
	})
}

// MarshalJSON implements json.Marshaler for IntLiteral.
func (l *IntLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Value   int64  `json:"value"`
		BitSize int    `json:"bitSize"`
	}{
		Kind:    LiteralInt.String(),
		Value:   l.Value,
		BitSize: l.BitSize,
	})
}

// MarshalJSON implements json.Marshaler for FloatLiteral.
// The value is written with the shortest representation at its bit size,
// so a 32-bit 0.1 stays 0.1.
func (l *FloatLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string      `json:"kind"`
		Value   json.Number `json:"value"`
		BitSize int         `json:"bitSize"`
	}{
		Kind:    LiteralFloat.String(),
		Value:   json.Number(strconv.FormatFloat(l.Value, 'g', -1, l.BitSize)),
		BitSize: l.BitSize,
	})
}

// MarshalJSON implements json.Marshaler for EnumLiteral.
func (l *EnumLiteral) MarshalJSON() ([]byte, error) {
	type Alias EnumLiteral
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  LiteralEnum.String(),
		Alias: (*Alias)(l),
	})
}

// MarshalJSON implements json.Marshaler for ListLiteral.
func (l *ListLiteral) MarshalJSON() ([]byte, error) {
	elements := l.Elements
	if elements == nil {
		elements = []Literal{}
	}
	return json.Marshal(&struct {
		Kind     string    `json:"kind"`
		Elements []Literal `json:"elements"`
	}{
		Kind:     LiteralList.String(),
		Elements: elements,
	})
}

// MarshalJSON implements json.Marshaler for DocumentLiteral.
// The document is embedded as JSON rather than as a string.
func (l *DocumentLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string          `json:"kind"`
		Value json.RawMessage `json:"value"`
	}{
		Kind:  LiteralDocument.String(),
		Value: json.RawMessage(l.JSON),
	})
}
