package callgen

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecordNamespace is the UUID namespace of record IDs.
var RecordNamespace = uuid.MustParse("6f1c3a52-4d0e-5b7a-9c2f-8e31d4a7b905")

// Result is the outcome of generating one record of a batch.
type Result struct {
	// ID is derived from the record's source and operation, so reruns over
	// the same tests produce the same IDs.
	ID     uuid.UUID
	Record Record
	Call   *Call
	Err    error
}

// RecordID returns the stable ID of rec.
func RecordID(rec Record) uuid.UUID {
	return uuid.NewSHA1(RecordNamespace, []byte(rec.Source+"\x00"+rec.Operation))
}

// GenerateAll generates every record with at most workers concurrent
// generations (workers <= 0 means no limit). Results are in input order.
// A failing record is reported in its Result and does not stop the batch;
// the returned error is non-nil only when ctx is done first.
func GenerateAll(ctx context.Context, gen *Generator, records []Record, workers int) ([]Result, error) {
	results := make([]Result, len(records))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, rec := range records {
		i, rec := i, rec
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			call, err := gen.Generate(gctx, rec)
			results[i] = Result{ID: RecordID(rec), Record: rec, Call: call, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Failed returns the results whose generation failed.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
