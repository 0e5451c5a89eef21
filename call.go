package callgen

// Call is the typed description of one API call, ready to be rendered by a
// language backend. A Call is never modified after Generate returns it.
type Call struct {
	// Operation is the dotted operation name, e.g. "indices.create".
	Operation string `json:"operation"`

	// Namespace is the prefix before the first '.', or "" for root operations.
	Namespace string `json:"namespace,omitempty"`

	// Method is the operation name without its namespace, e.g. "create".
	Method string `json:"method"`

	// Parts selects the URL template. It is nil when the operation has a
	// single template and takes no selector argument.
	Parts *Parts `json:"parts,omitempty"`

	// Params are the coerced query parameters in record order.
	Params []Param `json:"params,omitempty"`

	// Body is nil when the record has no body.
	Body *Body `json:"body,omitempty"`

	// Ignore is the status code the call tolerates, if any.
	Ignore *int64 `json:"ignore,omitempty"`

	Headers  map[string]string `json:"headers,omitempty"`
	Catch    string            `json:"catch,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Parts is the URL template selector of a call.
type Parts struct {
	// Enum is the selector type, e.g. "IndicesCreateParts".
	Enum string `json:"enum"`

	// Variant identifies the template, e.g. "IndexId", or "None" for the
	// template without parameters.
	Variant string `json:"variant"`

	// Path is the selected template, e.g. "/{index}/_doc/{id}".
	Path string `json:"path"`

	// Values holds one literal per template parameter, in template order.
	Values []Literal `json:"values,omitempty"`
}

// Param is a coerced query parameter assignment.
type Param struct {
	Name  string  `json:"name"`
	Value Literal `json:"value"`
}

// Param returns the assignment of the named query parameter.
func (c *Call) Param(name string) (Literal, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
