package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationGroupExtension names the OpenAPI extension that groups several
// path operations into one logical endpoint with alternative URL templates.
const OperationGroupExtension = "x-operation-group"

// FromOpenAPI builds a Schema from an OpenAPI 3 document.
//
// Operations sharing an x-operation-group value (or, failing that, an
// operationId) become one Endpoint; each distinct path becomes one of its
// URL templates. Path parameters become template parts, query parameters
// become endpoint params, and an application/x-ndjson request body marks
// the endpoint as BodyMulti.
func FromOpenAPI(doc *openapi3.T) (*Schema, error) {
	s := NewSchema()
	if doc == nil || doc.Paths == nil {
		return s, nil
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, p := range keys {
		item := paths[p]
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := ops[method]
			name := operationGroup(op)
			if name == "" {
				errs = append(errs, fmt.Errorf("%s %s: operation has neither %s nor operationId", method, p, OperationGroupExtension))
				continue
			}

			e := s.Endpoint(name)
			if e == nil {
				e = &Endpoint{Name: name, Params: make(map[string]Param)}
				if op.ExternalDocs != nil {
					e.Documentation = op.ExternalDocs.URL
				}
				s.AddEndpoint(e)
			}

			t := findTemplate(e, p)
			t.Methods = append(t.Methods, strings.ToUpper(method))

			params := append(openapi3.Parameters{}, item.Parameters...)
			params = append(params, op.Parameters...)
			for _, ref := range params {
				if ref == nil || ref.Value == nil {
					continue
				}
				param := paramFromOpenAPI(ref.Value)
				switch ref.Value.In {
				case openapi3.ParameterInPath:
					t.Parts[param.Name] = param
				case openapi3.ParameterInQuery:
					e.Params[param.Name] = param
				}
			}

			if op.RequestBody != nil && op.RequestBody.Value != nil {
				contract := BodySingle
				if _, ok := op.RequestBody.Value.Content["application/x-ndjson"]; ok {
					contract = BodyMulti
				}
				if contract > e.Body {
					e.Body = contract
				}
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if verrs := s.Validate(); len(verrs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(verrs...))
	}
	return s, nil
}

func operationGroup(op *openapi3.Operation) string {
	if g, ok := op.Extensions[OperationGroupExtension].(string); ok && g != "" {
		return g
	}
	return op.OperationID
}

// findTemplate returns the endpoint's template for path, adding one if needed.
func findTemplate(e *Endpoint, path string) *URLTemplate {
	for i := range e.Templates {
		if e.Templates[i].Path == path {
			return &e.Templates[i]
		}
	}
	e.Templates = append(e.Templates, URLTemplate{
		Path:   path,
		Params: PathParams(path),
		Parts:  make(map[string]Param),
	})
	return &e.Templates[len(e.Templates)-1]
}

func paramFromOpenAPI(p *openapi3.Parameter) Param {
	param := Param{
		Name:        p.Name,
		Type:        TypeString,
		Description: p.Description,
		Deprecated:  p.Deprecated,
	}
	if p.Schema == nil || p.Schema.Value == nil {
		return param
	}
	schema := p.Schema.Value

	if len(schema.Enum) > 0 {
		param.Type = TypeEnum
		for _, v := range schema.Enum {
			if s, ok := v.(string); ok {
				param.Options = append(param.Options, s)
			}
		}
		return param
	}

	if schema.Type == nil {
		return param
	}
	switch {
	case schema.Type.Is("boolean"):
		param.Type = TypeBoolean
	case schema.Type.Is("integer"):
		param.Type = TypeInteger
		if schema.Format == "int64" {
			param.Type = TypeLong
		}
	case schema.Type.Is("number"):
		switch schema.Format {
		case "float":
			param.Type = TypeFloat
		case "double":
			param.Type = TypeDouble
		default:
			param.Type = TypeNumber
		}
	case schema.Type.Is("array"):
		param.Type = TypeList
	}
	return param
}
