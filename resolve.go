package callgen

import (
	"fmt"
	"strings"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/naming"
)

// NoPartsVariant names the selector variant of a template without parameters.
const NoPartsVariant = "None"

// resolution is the outcome of template selection.
type resolution struct {
	template *api.URLTemplate

	// explicit is false when no URL parts were given and the endpoint has a
	// single template: the generated call takes no parts selector.
	explicit bool
}

// resolveTemplate selects the one URL template of e whose parameter names
// match parts exactly.
func resolveTemplate(e *api.Endpoint, parts []Arg) (resolution, []error) {
	if len(parts) == 0 {
		for i := range e.Templates {
			if len(e.Templates[i].Params) == 0 {
				return resolution{template: &e.Templates[i], explicit: len(e.Templates) > 1}, nil
			}
		}
		return resolution{}, []error{
			Errorf(CodeAmbiguousOrMissingTemplate, "no path for %q with no URL parts", e.Name).
				WithDetail("operation", e.Name),
		}
	}

	var candidates []*api.URLTemplate
	for i := range e.Templates {
		if templateMatches(&e.Templates[i], parts) {
			candidates = append(candidates, &e.Templates[i])
		}
	}

	switch len(candidates) {
	case 1:
		return resolution{template: candidates[0], explicit: true}, nil
	case 0:
		names := argNames(parts)
		errs := []error{
			Errorf(CodeAmbiguousOrMissingTemplate, "no path for %q with URL parts [%s]", e.Name, strings.Join(names, ", ")).
				WithDetail("operation", e.Name).
				WithDetail("parts", names),
		}
		for _, n := range names {
			if !e.HasTemplateParam(n) {
				errs = append(errs, Errorf(CodeUnresolvedArgument, "no URL part found for %q", n).
					WithDetail("operation", e.Name).
					WithDetail("arg", n))
			}
		}
		return resolution{}, errs
	default:
		paths := make([]string, len(candidates))
		for i, t := range candidates {
			paths[i] = t.Path
		}
		return resolution{}, []error{
			Errorf(CodeAmbiguousOrMissingTemplate, "ambiguous path for %q with URL parts [%s]: matches %s",
				e.Name, strings.Join(argNames(parts), ", "), strings.Join(paths, ", ")).
				WithDetail("operation", e.Name),
		}
	}
}

// templateMatches reports whether t declares exactly the supplied names.
func templateMatches(t *api.URLTemplate, parts []Arg) bool {
	if len(t.Params) != len(parts) {
		return false
	}
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if t.Index(p.Name) < 0 || seen[p.Name] {
			return false
		}
		seen[p.Name] = true
	}
	return true
}

// orderParts returns parts in the template's declared parameter order.
func orderParts(t *api.URLTemplate, parts []Arg) []Arg {
	ordered := make([]Arg, len(t.Params))
	for _, p := range parts {
		ordered[t.Index(p.Name)] = p
	}
	return ordered
}

// variantName is the selector variant identifying t, e.g. "IndexId".
func variantName(t *api.URLTemplate, namer naming.Namer) string {
	if len(t.Params) == 0 {
		return NoPartsVariant
	}
	var b strings.Builder
	for _, p := range t.Params {
		b.WriteString(namer(p))
	}
	return b.String()
}

// partsEnumName is the selector type for operation op, e.g. "IndicesCreateParts".
func partsEnumName(op string, namer naming.Namer) string {
	return fmt.Sprintf("%sParts", namer(op))
}

func argNames(args []Arg) []string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name
	}
	return names
}
