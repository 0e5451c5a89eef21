package callgen

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable generation error code.
type ErrorCode string

const (
	CodeUnknownOperation           ErrorCode = "unknown_operation"
	CodeUnresolvedArgument         ErrorCode = "unresolved_argument"
	CodeAmbiguousOrMissingTemplate ErrorCode = "ambiguous_or_missing_template"
	CodeTypeCoercionFailure        ErrorCode = "type_coercion_failure"
	CodeEnumValidationFailure      ErrorCode = "enum_validation_failure"
	CodeUnsupportedValueShape      ErrorCode = "unsupported_value_shape"
	CodeInvalidRecord              ErrorCode = "invalid_record" // Malformed test action, or an error from outside the generator
)

// Error is a single generation failure for one call record.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new generation error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new generation error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Errors flattens err into its generation errors, in order.
// Joined errors (errors.Join) are unwrapped recursively; leaves that are not
// *Error are reported as CodeInvalidRecord.
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}

	var genErr *Error
	if errors.As(err, &genErr) && genErr == err {
		return []*Error{genErr}
	}

	// Handle multi-errors (errors.Join)
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*Error
		for _, e := range u.Unwrap() {
			out = append(out, Errors(e)...)
		}
		return out
	}

	if errors.As(err, &genErr) {
		return []*Error{genErr}
	}
	return []*Error{NewError(CodeInvalidRecord, err.Error())}
}

// Messages returns the human-readable messages of every error in err.
func Messages(err error) []string {
	errs := Errors(err)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

// HasCode reports whether any error in err carries code.
func HasCode(err error, code ErrorCode) bool {
	for _, e := range Errors(err) {
		if e.Code == code {
			return true
		}
	}
	return false
}
