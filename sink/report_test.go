package sink

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/broady/callgen"
)

func TestWriteReport(t *testing.T) {
	ok := callgen.Record{Operation: "info", Source: "info/10_info.yml:3"}
	bad := callgen.Record{Operation: "nope", Source: "info/10_info.yml:9"}
	results := []callgen.Result{
		{
			ID:     callgen.RecordID(ok),
			Record: ok,
			Call:   &callgen.Call{Operation: "info", Method: "info"},
		},
		{
			ID:     callgen.RecordID(bad),
			Record: bad,
			Err:    callgen.Errorf(callgen.CodeUnknownOperation, "no API found for %q", "nope"),
		},
	}

	s := NewMemorySink()
	if err := WriteReport(context.Background(), s, NewReport("info/10_info.yml", results)); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data := s.Get("info/10_info.yml.calls.json")
	if data == nil {
		t.Fatalf("report not written; have %v", s.Names())
	}

	var got struct {
		Source string `json:"source"`
		Calls  []struct {
			ID        string `json:"id"`
			Source    string `json:"source"`
			Operation string `json:"operation"`
			Call      *struct {
				Method string `json:"method"`
			} `json:"call"`
			Errors []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"calls"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, data)
	}

	if got.Source != "info/10_info.yml" {
		t.Errorf("source = %q", got.Source)
	}
	if len(got.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(got.Calls))
	}
	if got.Calls[0].ID != callgen.RecordID(ok).String() {
		t.Errorf("id = %s", got.Calls[0].ID)
	}
	if got.Calls[0].Call == nil || got.Calls[0].Call.Method != "info" {
		t.Errorf("first call = %+v", got.Calls[0].Call)
	}
	if len(got.Calls[0].Errors) != 0 {
		t.Errorf("first call has errors: %+v", got.Calls[0].Errors)
	}
	if got.Calls[1].Call != nil {
		t.Error("failed record should have no call")
	}
	if len(got.Calls[1].Errors) != 1 || got.Calls[1].Errors[0].Code != "unknown_operation" {
		t.Errorf("errors = %+v", got.Calls[1].Errors)
	}
}

func TestReportPath(t *testing.T) {
	if got := ReportPath("a/b.yml"); got != "a/b.yml.calls.json" {
		t.Errorf("ReportPath() = %q", got)
	}
}
