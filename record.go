package callgen

import (
	"github.com/broady/callgen/rawvalue"
)

// Record is one API call as it appears in a YAML test: an operation name and
// its arguments in document order.
type Record struct {
	// Operation is the dotted operation name, e.g. "indices.create".
	Operation string

	// Args are the call's arguments in document order.
	Args []Arg

	// Source locates the record for diagnostics, e.g. "indices/10_basic.yml:14".
	Source string

	// Headers, Catch and Warnings come from the enclosing test step.
	Headers  map[string]string
	Catch    string
	Warnings []string
}

// Arg is a named raw argument.
type Arg struct {
	Name  string
	Value rawvalue.Value
}

// RecordFromValue builds a Record from a mapping of argument names to raw
// values. A null value is treated as a call with no arguments.
func RecordFromValue(operation string, v rawvalue.Value) (Record, error) {
	rec := Record{Operation: operation}
	switch v.Kind() {
	case rawvalue.KindNull:
		return rec, nil
	case rawvalue.KindMapping:
		for _, p := range v.Pairs() {
			rec.Args = append(rec.Args, Arg{Name: p.Key, Value: p.Value})
		}
		return rec, nil
	default:
		return rec, Errorf(CodeInvalidRecord, "arguments of %q must be a mapping, got %s", operation, v.Kind())
	}
}

// Arg returns the named argument.
func (r Record) Arg(name string) (rawvalue.Value, bool) {
	for _, a := range r.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return rawvalue.Value{}, false
}
