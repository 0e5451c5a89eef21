package callgen

import (
	"context"
)

// GenerateFunc produces the call description of one record.
// It is passed to [Interceptor] functions to invoke the next interceptor
// or the generator itself.
type GenerateFunc func(ctx context.Context, rec Record) (*Call, error)

// Interceptor is a hook that wraps generation of a single record.
//
//	func timing(ctx context.Context, rec callgen.Record, next callgen.GenerateFunc) (*callgen.Call, error) {
//	    start := time.Now()
//	    call, err := next(ctx, rec)
//	    log.Printf("%s took %v", rec.Operation, time.Since(start))
//	    return call, err
//	}
//
// Interceptors can:
//   - Rewrite the record before calling next
//   - Inspect or replace the call description after calling next
//   - Short-circuit by returning an error without calling next
type Interceptor func(ctx context.Context, rec Record, next GenerateFunc) (*Call, error)

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, rec Record, next GenerateFunc) (*Call, error) {
		// Chain: i[0] -> i[1] -> ... -> next
		chain := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, rec Record) (*Call, error) {
				return current(ctx, rec, inner)
			}
		}
		return chain(ctx, rec)
	}
}
