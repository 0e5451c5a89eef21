// Package naming converts schema names into target identifiers.
//
// The generator never builds identifiers itself; it is handed a Namer and
// applies it to operation names, URL part names and enum values. Swapping
// the Namer retargets the generated call descriptions at another naming
// convention without touching the generator.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer converts a schema name into an identifier.
type Namer func(name string) string

// PascalCase joins the words of name with each word's first letter upper-cased:
// "indices.create" becomes "IndicesCreate" and "wait_for" becomes "WaitFor".
// Word boundaries are any characters that are not letters or digits.
// Letters after the first in a word are left as they are.
// A result that would start with a digit is prefixed with an underscore.
func PascalCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}

	// Casers are stateful; one per call keeps PascalCase safe for concurrent use.
	title := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	return sanitizeIdentifier(b.String())
}

// Identity returns name unchanged.
func Identity(name string) string { return name }

// sanitizeIdentifier makes an identifier valid in C-family languages.
func sanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}

	var result strings.Builder

	// Handle leading digit
	if unicode.IsDigit(rune(name[0])) {
		result.WriteRune('_')
	}

	// Replace invalid characters with underscores
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	return result.String()
}
