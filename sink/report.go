package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/broady/callgen"
)

// ReportSuffix is appended to a test file's path to name its report.
const ReportSuffix = ".calls.json"

// Report is the generated output for one test file.
type Report struct {
	// Source is the test file path.
	Source string  `json:"source"`
	Calls  []Entry `json:"calls"`
}

// Entry is the outcome of one record.
type Entry struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`
	Operation string           `json:"operation"`
	Call      *callgen.Call    `json:"call,omitempty"`
	Errors    []*callgen.Error `json:"errors,omitempty"`
}

// NewReport builds the report of a test file from its batch results.
func NewReport(source string, results []callgen.Result) *Report {
	r := &Report{Source: source, Calls: make([]Entry, 0, len(results))}
	for _, res := range results {
		r.Calls = append(r.Calls, Entry{
			ID:        res.ID.String(),
			Source:    res.Record.Source,
			Operation: res.Record.Operation,
			Call:      res.Call,
			Errors:    callgen.Errors(res.Err),
		})
	}
	return r
}

// ReportPath returns the report name for a test file, e.g.
// "indices.create/10_basic.yml.calls.json".
func ReportPath(testPath string) string {
	return testPath + ReportSuffix
}

// WriteReport encodes r as indented JSON and writes it to s.
func WriteReport(ctx context.Context, s Sink, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report for %s: %w", r.Source, err)
	}
	data = append(data, '\n')
	return s.WriteFile(ctx, ReportPath(r.Source), data)
}
