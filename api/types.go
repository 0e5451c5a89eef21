// Package api defines the Endpoint Schema consumed by the call generator.
// A Schema maps dotted operation names ("indices.create") to Endpoints, each
// describing the URL templates, query parameters and body contract the
// generated client accepts for that operation.
package api

import "fmt"

// TypeKind identifies the declared type of a path part or query parameter.
// The set is closed; loaders map every schema type string onto one of these.
type TypeKind int

const (
	TypeString TypeKind = iota
	TypeEnum            // String restricted to Param.Options
	TypeList            // Comma-separated list of strings
	TypeBoolean
	TypeInteger // 32-bit signed integer
	TypeLong    // 64-bit signed integer
	TypeFloat   // 32-bit float
	TypeDouble  // 64-bit float
	TypeNumber  // Unsized number, generated as a 32-bit integer
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case TypeString:
		return "String"
	case TypeEnum:
		return "Enum"
	case TypeList:
		return "List"
	case TypeBoolean:
		return "Boolean"
	case TypeInteger:
		return "Integer"
	case TypeLong:
		return "Long"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseTypeKind maps a rest-api-spec type name onto a TypeKind.
// Date and time types are carried as strings.
func ParseTypeKind(s string) (TypeKind, error) {
	switch s {
	case "string", "text", "time", "date":
		return TypeString, nil
	case "enum":
		return TypeEnum, nil
	case "list":
		return TypeList, nil
	case "boolean":
		return TypeBoolean, nil
	case "int", "integer":
		return TypeInteger, nil
	case "long":
		return TypeLong, nil
	case "float":
		return TypeFloat, nil
	case "double":
		return TypeDouble, nil
	case "number":
		return TypeNumber, nil
	default:
		return TypeString, fmt.Errorf("unknown type %q", s)
	}
}

// BodyContract describes the request body an endpoint accepts.
type BodyContract int

const (
	BodyNone   BodyContract = iota // No body declared
	BodySingle                     // One JSON document
	BodyMulti                      // Newline-delimited sequence of documents (bulk style)
)

// String returns the string representation of the body contract.
func (b BodyContract) String() string {
	switch b {
	case BodyNone:
		return "none"
	case BodySingle:
		return "single"
	case BodyMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b BodyContract) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Param is a typed path part or query parameter.
type Param struct {
	// Name is the wire name, e.g. "expand_wildcards".
	Name string

	// Type is the declared type.
	Type TypeKind

	// Options lists the accepted values when Type is TypeEnum.
	// Order is the schema's declaration order.
	Options []string

	// Description is the schema's free-form documentation.
	Description string

	// Deprecated is set when the schema marks the parameter deprecated.
	Deprecated bool
}

// HasOption reports whether v is one of the declared enum options.
func (p Param) HasOption(v string) bool {
	for _, o := range p.Options {
		if o == v {
			return true
		}
	}
	return false
}
