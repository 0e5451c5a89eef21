package api

import (
	"sort"
)

// Schema is the complete set of endpoints known to the generator.
// It is built once before generation and is read-only afterwards, so a
// single Schema may be shared by concurrent generators.
type Schema struct {
	// Endpoints maps dotted operation names to their definitions.
	Endpoints map[string]*Endpoint

	// CommonParams are query parameters accepted by every endpoint
	// (e.g. "pretty", "human", "error_trace", "filter_path").
	CommonParams map[string]Param
}

// NewSchema returns an empty schema ready for AddEndpoint.
func NewSchema() *Schema {
	return &Schema{
		Endpoints:    make(map[string]*Endpoint),
		CommonParams: make(map[string]Param),
	}
}

// AddEndpoint adds or replaces an endpoint, keyed by its Name.
func (s *Schema) AddEndpoint(e *Endpoint) {
	if s.Endpoints == nil {
		s.Endpoints = make(map[string]*Endpoint)
	}
	s.Endpoints[e.Name] = e
}

// AddCommonParam registers a schema-wide query parameter.
func (s *Schema) AddCommonParam(p Param) {
	if s.CommonParams == nil {
		s.CommonParams = make(map[string]Param)
	}
	s.CommonParams[p.Name] = p
}

// Endpoint looks up an endpoint by operation name. Returns nil if not found.
func (s *Schema) Endpoint(name string) *Endpoint {
	return s.Endpoints[name]
}

// QueryParam resolves a query parameter for an endpoint, checking the
// endpoint's own parameters before the schema-wide ones.
func (s *Schema) QueryParam(e *Endpoint, name string) (Param, bool) {
	if p, ok := e.Param(name); ok {
		return p, true
	}
	p, ok := s.CommonParams[name]
	return p, ok
}

// Names returns the endpoint names in sorted order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Endpoints))
	for name := range s.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first), in endpoint name order.
func (s *Schema) Validate() []error {
	var errors []*ValidationError

	for _, name := range s.Names() {
		e := s.Endpoints[name]

		if e.Name != name {
			errors = append(errors, &ValidationError{
				Code:    "invalid_name",
				Message: "endpoint registered as " + name + " is named " + e.Name,
			})
		}

		if len(e.Templates) == 0 {
			errors = append(errors, &ValidationError{
				Code:    "missing_template",
				Message: "endpoint " + name + " has no URL templates",
			})
		}

		// Resolution selects a template by its parameter-name set, so two
		// templates with the same set make the choice undefined.
		seen := make(map[string]string)
		for _, t := range e.Templates {
			key := t.Key()
			if prev, ok := seen[key]; ok {
				errors = append(errors, &ValidationError{
					Code:    "duplicate_template",
					Message: "endpoint " + name + " has templates " + prev + " and " + t.Path + " with the same URL parts [" + key + "]",
				})
			}
			seen[key] = t.Path

			for _, p := range t.Params {
				if _, ok := t.Parts[p]; !ok {
					errors = append(errors, &ValidationError{
						Code:    "undeclared_part",
						Message: "endpoint " + name + " path " + t.Path + " references undeclared part " + p,
					})
				}
			}
			errors = append(errors, validateParams(name, sortedParams(t.Parts))...)
		}

		errors = append(errors, validateParams(name, sortedParams(e.Params))...)
	}

	errors = append(errors, validateParams("common params", sortedParams(s.CommonParams))...)

	// Convert ValidationErrors to regular errors
	var result []error
	for _, e := range errors {
		result = append(result, e)
	}
	return result
}

func validateParams(context string, params []Param) []*ValidationError {
	var errors []*ValidationError
	for _, p := range params {
		if p.Type == TypeEnum && len(p.Options) == 0 {
			errors = append(errors, &ValidationError{
				Code:    "missing_options",
				Message: context + ": enum param " + p.Name + " declares no options",
			})
		}
	}
	return errors
}

func sortedParams(m map[string]Param) []Param {
	params := make([]Param, 0, len(m))
	for _, p := range m {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
