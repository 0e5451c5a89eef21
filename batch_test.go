package callgen

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestGenerateAll(t *testing.T) {
	gen := New(testSchema(t), Options{})

	var records []Record
	for i := 0; i < 50; i++ {
		rec := newRecord(t, "get", fmt.Sprintf(`{index: test, id: "%d"}`, i))
		rec.Source = fmt.Sprintf("get.yml:%d", i)
		records = append(records, rec)
	}
	bad := newRecord(t, "get", `{index: test}`)
	bad.Source = "get.yml:bad"
	records = append(records, bad)

	results, err := GenerateAll(context.Background(), gen, records, 4)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(results) != len(records) {
		t.Fatalf("expected %d results, got %d", len(records), len(results))
	}

	for i, r := range results[:50] {
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
			continue
		}
		if r.Record.Source != records[i].Source {
			t.Errorf("result %d out of order: source %s", i, r.Record.Source)
		}
		want := fmt.Sprintf(`"%d"`, i)
		if got := r.Call.Parts.Values[1].GoString(); got != want {
			t.Errorf("result %d: id = %s, want %s", i, got, want)
		}
		if r.ID != RecordID(records[i]) {
			t.Errorf("result %d: ID = %s, want %s", i, r.ID, RecordID(records[i]))
		}
	}

	failed := Failed(results)
	if len(failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failed))
	}
	if failed[0].Record.Source != "get.yml:bad" {
		t.Errorf("wrong failed record: %s", failed[0].Record.Source)
	}
	if !HasCode(failed[0].Err, CodeAmbiguousOrMissingTemplate) {
		t.Errorf("expected %s, got %v", CodeAmbiguousOrMissingTemplate, failed[0].Err)
	}
}

func TestGenerateAll_Unlimited(t *testing.T) {
	gen := New(testSchema(t), Options{})
	records := []Record{
		newRecord(t, "info", `{}`),
		newRecord(t, "search", `{}`),
	}

	results, err := GenerateAll(context.Background(), gen, records, 0)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if len(Failed(results)) != 0 {
		t.Errorf("unexpected failures: %v", Failed(results))
	}
	if results[0].Call.Operation != "info" || results[1].Call.Operation != "search" {
		t.Errorf("results out of order")
	}
}

func TestGenerateAll_Canceled(t *testing.T) {
	gen := New(testSchema(t), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GenerateAll(ctx, gen, []Record{newRecord(t, "info", `{}`)}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRecordID(t *testing.T) {
	a := Record{Operation: "get", Source: "a.yml:3"}
	b := Record{Operation: "get", Source: "a.yml:4"}

	if RecordID(a) != RecordID(a) {
		t.Error("RecordID is not stable")
	}
	if RecordID(a) == RecordID(b) {
		t.Error("different sources produced the same ID")
	}
	if v := RecordID(a).Version(); v != 5 {
		t.Errorf("expected a version 5 UUID, got version %d", v)
	}
}
