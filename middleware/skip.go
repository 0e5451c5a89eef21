package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/broady/callgen"
)

// ErrSkipped is returned for records whose operation is skipped.
var ErrSkipped = errors.New("operation skipped")

// SkipInterceptor creates an interceptor that refuses the named operations
// without generating them. The returned error wraps ErrSkipped.
func SkipInterceptor(operations ...string) callgen.Interceptor {
	skip := make(map[string]bool, len(operations))
	for _, op := range operations {
		skip[op] = true
	}

	return func(ctx context.Context, rec callgen.Record, next callgen.GenerateFunc) (*callgen.Call, error) {
		if skip[rec.Operation] {
			return nil, fmt.Errorf("%s: %w", rec.Operation, ErrSkipped)
		}
		return next(ctx, rec)
	}
}
