// Package callgen translates API calls written as untyped YAML test data into
// typed call descriptions, directed by an API schema.
//
// A [Generator] takes a [Record] (an operation name plus raw arguments) and
// produces a [Call]: the URL template selector with its ordered part values,
// the query parameters coerced to their declared types, and the encoded
// request body. Rendering a Call into source code is left to a language
// backend.
//
//	schema, err := api.LoadDir(os.DirFS("rest-api-spec/api"))
//	if err != nil {
//	    return err
//	}
//	gen := callgen.New(schema, callgen.Options{})
//	call, err := gen.Generate(ctx, rec)
//	if err != nil {
//	    for _, msg := range callgen.Messages(err) {
//	        fmt.Println(msg)
//	    }
//	}
package callgen

import (
	"context"
	"errors"
	"strconv"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/rawvalue"
)

// Generator builds call descriptions from records.
// A Generator is safe for concurrent use.
type Generator struct {
	schema      *api.Schema
	opts        Options
	interceptor Interceptor
}

// New returns a Generator for schema.
func New(schema *api.Schema, opts Options) *Generator {
	opts = applyOptionDefaults(opts)
	return &Generator{
		schema:      schema,
		opts:        opts,
		interceptor: chainInterceptors(opts.Interceptors),
	}
}

// Schema returns the generator's schema.
func (g *Generator) Schema() *api.Schema {
	return g.schema
}

// Generate translates one record into a call description.
//
// Failures in independent arguments are collected: the returned error joins
// one [*Error] per problem found, and [Errors] or [Messages] take it apart.
func (g *Generator) Generate(ctx context.Context, rec Record) (*Call, error) {
	if g.interceptor != nil {
		return g.interceptor(ctx, rec, g.generate)
	}
	return g.generate(ctx, rec)
}

func (g *Generator) generate(_ context.Context, rec Record) (*Call, error) {
	e := g.schema.Endpoint(rec.Operation)
	if e == nil {
		return nil, Errorf(CodeUnknownOperation, "no API found for %q", rec.Operation).
			WithDetail("operation", rec.Operation)
	}

	args, errs := classify(g.schema, e, rec.Args)

	parts, perrs := g.buildParts(e, args.parts)
	errs = append(errs, perrs...)

	var params []Param
	for _, qa := range args.params {
		lit, err := coerce(qa.Param, qa.Value, g.opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		params = append(params, Param{Name: qa.Name, Value: lit})
	}

	var body *Body
	if args.body != nil {
		var err error
		body, err = encodeBody(e.Body, *args.body)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, joinErrors(errs)
	}

	return &Call{
		Operation: e.Name,
		Namespace: e.Namespace(),
		Method:    e.Method(),
		Parts:     parts,
		Params:    params,
		Body:      body,
		Ignore:    args.ignore,
		Headers:   rec.Headers,
		Catch:     rec.Catch,
		Warnings:  rec.Warnings,
	}, nil
}

// buildParts resolves the URL template and coerces the part values in
// template order. Booleans are stringified first: path segments are text.
func (g *Generator) buildParts(e *api.Endpoint, args []Arg) (*Parts, []error) {
	res, errs := resolveTemplate(e, args)
	if len(errs) > 0 {
		return nil, errs
	}
	if !res.explicit {
		return nil, nil
	}

	t := res.template
	var values []Literal
	for _, a := range orderParts(t, args) {
		p, ok := t.Part(a.Name)
		if !ok {
			p = api.Param{Name: a.Name, Type: api.TypeString}
		}
		lit, err := coerce(p, stringifyBool(a.Value), g.opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values = append(values, lit)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &Parts{
		Enum:    partsEnumName(e.Name, g.opts.Namer),
		Variant: variantName(t, g.opts.Namer),
		Path:    t.Path,
		Values:  values,
	}, nil
}

func stringifyBool(v rawvalue.Value) rawvalue.Value {
	if v.Kind() == rawvalue.KindBool {
		return rawvalue.String(strconv.FormatBool(v.BoolValue()))
	}
	return v
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
