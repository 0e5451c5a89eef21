package callgen

import (
	"github.com/broady/callgen/naming"
)

// Options configures a Generator.
type Options struct {
	// Namer maps wire names to generated identifiers.
	// Default: naming.PascalCase.
	Namer naming.Namer

	// ListEnumParams names enum parameters that accept several options at
	// once. A comma-separated string value is split and each piece is
	// validated separately.
	// Default: ["expand_wildcards"].
	ListEnumParams []string

	// EmptyEnumDefaults maps an enum parameter name to the wire value used
	// when a test passes an empty string. Enum parameters not listed here
	// reject empty strings.
	// Default: {"refresh": "true", "size": "unspecified"}.
	EmptyEnumDefaults map[string]string

	// Interceptors wrap every Generate call. The first one is the outermost.
	Interceptors []Interceptor
}

// applyOptionDefaults applies default values to Options.
func applyOptionDefaults(opts Options) Options {
	if opts.Namer == nil {
		opts.Namer = naming.PascalCase
	}
	if opts.ListEnumParams == nil {
		opts.ListEnumParams = []string{"expand_wildcards"}
	}
	if opts.EmptyEnumDefaults == nil {
		opts.EmptyEnumDefaults = map[string]string{
			"refresh": "true",
			"size":    "unspecified",
		}
	}
	return opts
}

func (o Options) isListEnum(name string) bool {
	for _, n := range o.ListEnumParams {
		if n == name {
			return true
		}
	}
	return false
}
