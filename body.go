package callgen

import (
	"bytes"
	"encoding/json"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/rawvalue"
)

// Body is an encoded request body.
type Body struct {
	// Contract is the contract the body was encoded for. An endpoint that
	// declares no body but receives one is encoded as api.BodySingle.
	Contract api.BodyContract `json:"contract"`

	// Documents holds exactly one literal for api.BodySingle, and one
	// literal per newline-delimited entry for api.BodyMulti.
	Documents []Literal `json:"documents"`
}

// Single returns the document of a single-document body.
func (b *Body) Single() Literal {
	if b == nil || b.Contract != api.BodySingle || len(b.Documents) != 1 {
		return nil
	}
	return b.Documents[0]
}

// encodeBody converts a raw body into the literals the contract accepts.
// Strings are taken to be already serialized and pass through unchanged.
func encodeBody(contract api.BodyContract, v rawvalue.Value) (*Body, error) {
	if contract == api.BodyMulti {
		return encodeMulti(v)
	}
	doc, err := encodeDocument(v)
	if err != nil {
		return nil, err
	}
	return &Body{Contract: api.BodySingle, Documents: []Literal{doc}}, nil
}

func encodeMulti(v rawvalue.Value) (*Body, error) {
	switch v.Kind() {
	case rawvalue.KindString:
		return &Body{Contract: api.BodyMulti, Documents: []Literal{Str(v.Str())}}, nil
	case rawvalue.KindSequence:
		items := v.Items()
		docs := make([]Literal, 0, len(items))
		for _, item := range items {
			doc, err := encodeDocument(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return &Body{Contract: api.BodyMulti, Documents: docs}, nil
	default:
		return nil, Errorf(CodeUnsupportedValueShape, "body: expected a string or a list of documents for a bulk body, got %s", v.Kind()).
			WithDetail("arg", ArgBody)
	}
}

// encodeDocument returns a string literal for an already serialized document
// and a document literal for anything else.
func encodeDocument(v rawvalue.Value) (Literal, error) {
	if v.Kind() == rawvalue.KindString {
		return Str(v.Str()), nil
	}
	text, err := canonicalJSON(v)
	if err != nil {
		return nil, Errorf(CodeUnsupportedValueShape, "body: %v", err).
			WithDetail("arg", ArgBody)
	}
	return Document(text), nil
}

// canonicalJSON encodes v compactly with mapping keys sorted and without
// HTML escaping. Numbers keep their source text.
func canonicalJSON(v rawvalue.Value) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v.Interface()); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
