package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/broady/callgen/sink"
	"github.com/broady/callgen/testutil"
)

func inputs(t *testing.T) (Inputs, fstest.MapFS) {
	t.Helper()
	a := testutil.LoadArchive(t, "testdata/run.txtar")
	tests := testutil.FS(a, "tests")
	return Inputs{
		Spec:  testutil.FS(a, "api"),
		Tests: tests,
	}, tests
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func TestRun(t *testing.T) {
	in, _ := inputs(t)
	out := sink.NewMemorySink()
	var logs bytes.Buffer

	sum, err := Run(context.Background(), in, Options{
		Workers: 2,
		Skip:    []string{"indices.shrink"},
		Sink:    out,
		Logger:  quietLogger(&logs),
	})
	if !errors.Is(err, ErrFailures) {
		t.Fatalf("expected ErrFailures, got %v", err)
	}

	want := Summary{Files: 3, Records: 4, Failed: 1, Skipped: 1}
	if sum != want {
		t.Errorf("summary = %+v, want %+v", sum, want)
	}

	wantReports := []string{
		"bad/10_bad.yml.calls.json",
		"indices.create/10_basic.yml.calls.json",
		"indices.shrink/10_basic.yml.calls.json",
	}
	if got := out.Names(); strings.Join(got, ",") != strings.Join(wantReports, ",") {
		t.Errorf("reports = %v, want %v", got, wantReports)
	}

	var report sink.Report
	if err := json.Unmarshal(out.Get("indices.create/10_basic.yml.calls.json"), &report); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(report.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(report.Calls))
	}
	if report.Calls[1].Operation != "bulk" || report.Calls[1].Call == nil {
		t.Errorf("second call = %+v", report.Calls[1])
	}

	var shrink sink.Report
	if err := json.Unmarshal(out.Get("indices.shrink/10_basic.yml.calls.json"), &shrink); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(shrink.Calls) != 0 {
		t.Errorf("skipped records should not be reported, got %+v", shrink.Calls)
	}

	if !strings.Contains(logs.String(), "generation failed") {
		t.Errorf("expected failure to be logged:\n%s", logs.String())
	}
}

func TestRun_Check(t *testing.T) {
	in, tests := inputs(t)
	delete(tests, "bad/10_bad.yml")

	sum, err := Run(context.Background(), in, Options{Logger: quietLogger(new(bytes.Buffer))})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Records != 3 || sum.Failed != 0 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestRun_InvalidTestFile(t *testing.T) {
	in, tests := inputs(t)
	tests["broken/10_broken.yml"] = &fstest.MapFile{Data: []byte("test:\n  - do: nope\n")}
	delete(tests, "bad/10_bad.yml")

	sum, err := Run(context.Background(), in, Options{Logger: quietLogger(new(bytes.Buffer))})
	if !errors.Is(err, ErrFailures) {
		t.Fatalf("expected ErrFailures, got %v", err)
	}
	if sum.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", sum.Invalid)
	}
}

func TestRun_OpenAPI(t *testing.T) {
	a := testutil.LoadArchive(t, "testdata/run.txtar")
	tests := testutil.FS(a, "tests")
	delete(tests, "bad/10_bad.yml")
	delete(tests, "indices.shrink/10_basic.yml")

	in := Inputs{
		OpenAPI: testutil.File(t, a, "openapi.json"),
		Tests:   tests,
	}
	sum, err := Run(context.Background(), in, Options{Logger: quietLogger(new(bytes.Buffer))})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Records != 2 {
		t.Errorf("Records = %d, want 2", sum.Records)
	}
}

func TestLoadSchema_NoSource(t *testing.T) {
	if _, err := LoadSchema(context.Background(), Inputs{}); err == nil {
		t.Error("expected error without a schema source")
	}
}

func TestRun_MissingTests(t *testing.T) {
	in, _ := inputs(t)
	in.Tests = fstest.MapFS{}
	sum, err := Run(context.Background(), in, Options{Logger: quietLogger(new(bytes.Buffer))})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Files != 0 {
		t.Errorf("Files = %d, want 0", sum.Files)
	}
}
