// Package testutil provides fixtures and assertions for generator tests.
// Fixtures are txtar archives holding rest-api-spec files and YAML tests.
// This package is designed to be import-cycle safe and can be used from any
// package except api.
package testutil

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/broady/callgen/api"
)

// LoadArchive reads a txtar fixture, failing the test on error.
func LoadArchive(t testing.TB, path string) *txtar.Archive {
	t.Helper()
	a, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return a
}

// FS returns the archive files under dir as a file system rooted at dir.
// An empty dir returns every file.
func FS(a *txtar.Archive, dir string) fstest.MapFS {
	prefix := ""
	if dir != "" {
		prefix = strings.TrimSuffix(dir, "/") + "/"
	}
	fsys := make(fstest.MapFS)
	for _, f := range a.Files {
		name, ok := strings.CutPrefix(f.Name, prefix)
		if !ok {
			continue
		}
		fsys[name] = &fstest.MapFile{Data: f.Data, Mode: 0o644}
	}
	return fsys
}

// File returns the contents of the named archive file, failing the test if it
// is missing.
func File(t testing.TB, a *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("fixture has no file %s", name)
	return nil
}

// Schema loads a rest-api-spec directory, failing the test on error.
func Schema(t testing.TB, fsys fs.FS) *api.Schema {
	t.Helper()
	s, err := api.LoadDir(fsys)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

// AssertJSON marshals got and compares it with the JSON text want.
// Formatting and key order differences are ignored.
func AssertJSON(t testing.TB, got any, want string) {
	t.Helper()

	gotJSON, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Compare as JSON to ignore formatting differences
	var gotData, wantData any
	if err := json.Unmarshal(gotJSON, &gotData); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}
	if err := json.Unmarshal([]byte(want), &wantData); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}

	if diff := cmp.Diff(wantData, gotData); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s\ngot: %s", diff, gotJSON)
	}
}
