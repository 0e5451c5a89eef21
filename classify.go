package callgen

import (
	"strconv"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/rawvalue"
)

// Reserved argument names.
const (
	ArgBody   = "body"
	ArgIgnore = "ignore"
)

// queryArg is an argument classified as a query parameter.
type queryArg struct {
	Arg
	Param api.Param
}

// classified partitions a record's arguments by destination.
// Every group keeps document order.
type classified struct {
	parts  []Arg
	params []queryArg
	body   *rawvalue.Value
	ignore *int64
}

// classify partitions args for endpoint e. Declared query parameters win over
// the reserved names; anything unrecognized is assumed to be a URL part and
// left for the resolver to reject.
func classify(schema *api.Schema, e *api.Endpoint, args []Arg) (classified, []error) {
	var (
		c    classified
		errs []error
	)
	for _, a := range args {
		if p, ok := schema.QueryParam(e, a.Name); ok {
			c.params = append(c.params, queryArg{Arg: a, Param: p})
			continue
		}
		switch a.Name {
		case ArgBody:
			v := a.Value
			c.body = &v
		case ArgIgnore:
			status, err := parseIgnore(a.Value)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			c.ignore = &status
		default:
			c.parts = append(c.parts, a)
		}
	}
	return c, errs
}

// parseIgnore reads an ignored status code. Only the first element of a
// list is kept.
func parseIgnore(v rawvalue.Value) (int64, error) {
	switch v.Kind() {
	case rawvalue.KindInt:
		return v.IntValue(), nil
	case rawvalue.KindString:
		i, err := strconv.ParseInt(v.Str(), 10, 64)
		if err != nil {
			return 0, Errorf(CodeTypeCoercionFailure, "ignore: cannot parse %q as a status code", v.Str()).
				WithDetail("arg", ArgIgnore)
		}
		return i, nil
	case rawvalue.KindSequence:
		items := v.Items()
		if len(items) == 0 {
			return 0, Errorf(CodeTypeCoercionFailure, "ignore: empty list of status codes").
				WithDetail("arg", ArgIgnore)
		}
		return parseIgnore(items[0])
	default:
		return 0, Errorf(CodeTypeCoercionFailure, "ignore: expected integer or list of integers, got %s", v.Kind()).
			WithDetail("arg", ArgIgnore)
	}
}
