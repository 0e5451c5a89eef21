package api

import (
	"sort"
	"strings"
)

// URLTemplate is one concrete path shape for an endpoint.
type URLTemplate struct {
	// Path is the raw template, e.g. "/{index}/_doc/{id}".
	Path string

	// Methods lists the HTTP methods accepted on this path.
	Methods []string

	// Params is the ordered list of path parameter names, in the order
	// their placeholders appear in Path.
	Params []string

	// Parts maps each path parameter name to its declared type.
	Parts map[string]Param
}

// NewTemplate builds a URLTemplate from a path and its declared parts.
// Parameter order is taken from the placeholders in path; parts that do not
// appear in path are kept in Parts but are not template parameters.
func NewTemplate(path string, parts ...Param) URLTemplate {
	t := URLTemplate{
		Path:   path,
		Params: PathParams(path),
		Parts:  make(map[string]Param, len(parts)),
	}
	for _, p := range parts {
		t.Parts[p.Name] = p
	}
	return t
}

// PathParams returns the placeholder names of a path template in order.
// "/{index}/_doc/{id}" yields ["index", "id"].
func PathParams(path string) []string {
	var names []string
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return names
		}
		names = append(names, path[start+1:start+end])
		path = path[start+end+1:]
	}
}

// Part returns the declared type of the named path parameter.
func (t URLTemplate) Part(name string) (Param, bool) {
	p, ok := t.Parts[name]
	return p, ok
}

// Index returns the position of name in the template's parameter order, or -1.
func (t URLTemplate) Index(name string) int {
	for i, p := range t.Params {
		if p == name {
			return i
		}
	}
	return -1
}

// Key returns the template's parameter-name set in canonical (sorted) form.
// Two templates with equal keys cannot be told apart by their arguments.
func (t URLTemplate) Key() string {
	names := append([]string(nil), t.Params...)
	sort.Strings(names)
	return strings.Join(names, ",")
}

// Endpoint is a named operation of the API.
type Endpoint struct {
	// Name is the dotted operation name, e.g. "indices.create".
	Name string

	// Templates are the alternative URL shapes, in schema order.
	Templates []URLTemplate

	// Params maps query parameter names to their declared types.
	Params map[string]Param

	// Body is the request body contract.
	Body BodyContract

	// Documentation is a URL or short description from the schema.
	Documentation string

	// Stability is the schema's stability marker ("stable", "beta", ...).
	Stability string
}

// Namespace returns the prefix before the first '.', or "" for root operations.
func (e *Endpoint) Namespace() string {
	ns, _, ok := strings.Cut(e.Name, ".")
	if !ok {
		return ""
	}
	return ns
}

// Method returns the operation name without its namespace.
func (e *Endpoint) Method() string {
	_, m, ok := strings.Cut(e.Name, ".")
	if !ok {
		return e.Name
	}
	return m
}

// Param returns the endpoint's own query parameter with the given name.
func (e *Endpoint) Param(name string) (Param, bool) {
	p, ok := e.Params[name]
	return p, ok
}

// HasTemplateParam reports whether any template of the endpoint declares name.
func (e *Endpoint) HasTemplateParam(name string) bool {
	for _, t := range e.Templates {
		if t.Index(name) >= 0 {
			return true
		}
	}
	return false
}
