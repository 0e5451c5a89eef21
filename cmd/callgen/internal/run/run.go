// Package run is the generation pipeline shared by the gen and check commands.
package run

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/broady/callgen"
	"github.com/broady/callgen/api"
	"github.com/broady/callgen/middleware"
	"github.com/broady/callgen/sink"
	"github.com/broady/callgen/yamltest"
)

// Inputs locates the schema and the tests.
type Inputs struct {
	// Spec holds rest-api-spec JSON files. Ignored when OpenAPI is set.
	Spec fs.FS

	// OpenAPI is an OpenAPI 3 document (JSON or YAML).
	OpenAPI []byte

	// Tests holds the YAML tests.
	Tests fs.FS
}

// Options configures a run.
type Options struct {
	Generator callgen.Options
	Workers   int
	Skip      []string

	// Sink receives one report per test file. Nil runs without writing.
	Sink sink.Sink

	Logger *slog.Logger
}

// Summary counts the outcome of a run.
type Summary struct {
	Files   int
	Records int
	Failed  int
	Skipped int

	// Invalid counts test files with parse errors.
	Invalid int
}

// ErrFailures is returned when any record or test file failed.
var ErrFailures = errors.New("generation failed")

// Run loads the schema, generates every do step of every test file and
// writes the reports. Failing records are logged and counted; the run goes
// on, and ends with an error wrapping ErrFailures.
func Run(ctx context.Context, in Inputs, opts Options) (Summary, error) {
	var sum Summary
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := LoadSchema(ctx, in)
	if err != nil {
		return sum, err
	}
	logger.Info("schema loaded", slog.Int("endpoints", len(schema.Endpoints)))

	files, err := yamltest.LoadDir(in.Tests)
	if err != nil && files == nil {
		return sum, fmt.Errorf("load tests: %w", err)
	}

	genOpts := opts.Generator
	genOpts.Interceptors = append([]callgen.Interceptor{
		middleware.SkipInterceptor(opts.Skip...),
		middleware.LoggingInterceptor(logger),
	}, genOpts.Interceptors...)
	gen := callgen.New(schema, genOpts)

	for _, f := range files {
		sum.Files++
		if f.Err != nil {
			sum.Invalid++
			for _, msg := range callgen.Messages(f.Err) {
				logger.Warn("invalid test", slog.String("file", f.Path), slog.String("error", msg))
			}
		}
		results, err := callgen.GenerateAll(ctx, gen, f.Records(), opts.Workers)
		if err != nil {
			return sum, err
		}

		kept := results[:0]
		for _, r := range results {
			sum.Records++
			switch {
			case errors.Is(r.Err, middleware.ErrSkipped):
				sum.Skipped++
				continue
			case r.Err != nil:
				sum.Failed++
			}
			kept = append(kept, r)
		}

		if opts.Sink != nil {
			if err := sink.WriteReport(ctx, opts.Sink, sink.NewReport(f.Path, kept)); err != nil {
				return sum, err
			}
		}
	}
	logger.Info("generation finished",
		slog.Int("files", sum.Files),
		slog.Int("records", sum.Records),
		slog.Int("failed", sum.Failed),
		slog.Int("skipped", sum.Skipped),
	)

	if sum.Failed > 0 || sum.Invalid > 0 {
		return sum, fmt.Errorf("%w: %d of %d records failed, %d invalid test files",
			ErrFailures, sum.Failed, sum.Records, sum.Invalid)
	}
	return sum, nil
}

// LoadSchema builds the schema from an OpenAPI document when one is given,
// and from the rest-api-spec files otherwise.
func LoadSchema(ctx context.Context, in Inputs) (*api.Schema, error) {
	if in.OpenAPI != nil {
		loader := openapi3.NewLoader()
		loader.Context = ctx
		doc, err := loader.LoadFromData(in.OpenAPI)
		if err != nil {
			return nil, fmt.Errorf("load OpenAPI document: %w", err)
		}
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
		}
		return api.FromOpenAPI(doc)
	}
	if in.Spec == nil {
		return nil, errors.New("no schema source")
	}
	return api.LoadDir(in.Spec)
}
