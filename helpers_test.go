package callgen

import (
	"sync"
	"testing"

	"github.com/broady/callgen/api"
	"github.com/broady/callgen/rawvalue"
	"github.com/broady/callgen/testutil"
)

var (
	schemaOnce sync.Once
	schema     *api.Schema
)

// testSchema returns the schema in testdata/schema.txtar.
func testSchema(t testing.TB) *api.Schema {
	t.Helper()
	schemaOnce.Do(func() {
		a := testutil.LoadArchive(t, "testdata/schema.txtar")
		schema = testutil.Schema(t, testutil.FS(a, "api"))
	})
	if schema == nil {
		t.Fatal("test schema failed to load")
	}
	return schema
}

// newRecord builds a record from the YAML flow mapping args.
func newRecord(t testing.TB, op, args string) Record {
	t.Helper()
	v, err := rawvalue.Parse([]byte(args))
	if err != nil {
		t.Fatalf("parse %q: %v", args, err)
	}
	rec, err := RecordFromValue(op, v)
	if err != nil {
		t.Fatalf("RecordFromValue: %v", err)
	}
	rec.Source = "test.yml"
	return rec
}

// literals renders each literal with GoString.
func literals(ls []Literal) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.GoString()
	}
	return out
}

func codes(err error) []ErrorCode {
	var out []ErrorCode
	for _, e := range Errors(err) {
		out = append(out, e.Code)
	}
	return out
}

func mustParse(t testing.TB, yaml string) rawvalue.Value {
	t.Helper()
	v, err := rawvalue.Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse %q: %v", yaml, err)
	}
	return v
}
