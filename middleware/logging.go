// Package middleware provides interceptors for callgen generators.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/callgen"
)

// LoggingInterceptor creates an interceptor that logs generation using slog.
// It logs the start and end of each record at debug level, and every failure
// with all of the record's error messages at warn level.
func LoggingInterceptor(logger *slog.Logger) callgen.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, rec callgen.Record, next callgen.GenerateFunc) (*callgen.Call, error) {
		start := time.Now()

		logger.DebugContext(ctx, "generation started",
			slog.String("operation", rec.Operation),
			slog.String("source", rec.Source),
		)

		call, err := next(ctx, rec)
		duration := time.Since(start)

		if err != nil {
			logger.WarnContext(ctx, "generation failed",
				slog.String("operation", rec.Operation),
				slog.String("source", rec.Source),
				slog.Duration("duration", duration),
				slog.Any("errors", callgen.Messages(err)),
			)
		} else {
			logger.DebugContext(ctx, "generation completed",
				slog.String("operation", rec.Operation),
				slog.String("source", rec.Source),
				slog.Duration("duration", duration),
			)
		}

		return call, err
	}
}
