// Package yamltest reads YAML REST test files and extracts their API calls.
//
// A test file is a stream of YAML documents. Each document maps a section
// name ("setup", "teardown" or a test name) to a list of steps, and each step
// is a single-key mapping such as {do: ...} or {match: ...}. Only do steps are
// interpreted; every other step is kept by name.
package yamltest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/broady/callgen"
	"github.com/broady/callgen/rawvalue"
)

// Step kinds.
const (
	KindDo = "do"
)

// File is a parsed test file.
type File struct {
	// Path is the file's slash-separated path, as given to Parse.
	Path     string
	Sections []Section

	// Err joins the problems found while parsing; nil for a valid file.
	Err error
}

// Section is a named list of steps.
type Section struct {
	Name  string
	Line  int
	Steps []Step
}

// Step is one test step.
type Step struct {
	// Kind is the step's key, e.g. "do", "match" or "set".
	Kind string
	Line int

	// Do is set for do steps.
	Do *Do

	// Value is the step's raw content for every other kind.
	Value rawvalue.Value
}

// Do is an API call step.
type Do struct {
	Record callgen.Record

	// AllowedWarnings are warnings the call may, but need not, return.
	AllowedWarnings []string

	// NodeSelector is set when the step restricts the nodes it runs on.
	// The selector itself is not interpreted.
	NodeSelector bool
}

// Records returns the records of every do step, in file order.
func (f *File) Records() []callgen.Record {
	var recs []callgen.Record
	for _, s := range f.Sections {
		for _, st := range s.Steps {
			if st.Do != nil {
				recs = append(recs, st.Do.Record)
			}
		}
	}
	return recs
}

// Parse reads a test file. Problems in separate steps are all reported,
// joined into the returned error; the File holds every step that parsed.
func Parse(name string, data []byte) (*File, error) {
	f := &File{Path: name}
	p := &parser{file: name}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
			break
		}
		f.Sections = append(f.Sections, p.document(&doc)...)
	}

	f.Err = errors.Join(p.errs...)
	return f, f.Err
}

// LoadDir parses every *.yml and *.yaml file under fsys, in path order.
// Files that fail to parse are still returned with the steps that parsed.
func LoadDir(fsys fs.FS) ([]*File, error) {
	var names []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(p) {
		case ".yml", ".yaml":
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var (
		files []*File
		errs  []error
	)
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f, err := Parse(name, data)
		if err != nil {
			errs = append(errs, err)
		}
		files = append(files, f)
	}
	return files, errors.Join(errs...)
}

type parser struct {
	file string
	errs []error
}

func (p *parser) errorf(n *yaml.Node, format string, args ...any) {
	src := p.source(n)
	p.errs = append(p.errs, callgen.Errorf(callgen.CodeInvalidRecord, "%s: %s", src, fmt.Sprintf(format, args...)).
		WithDetail("source", src))
}

func (p *parser) source(n *yaml.Node) string {
	return fmt.Sprintf("%s:%d", p.file, n.Line)
}

func (p *parser) document(doc *yaml.Node) []Section {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		p.errorf(n, "expected mapping of sections but found %s", kindName(n))
		return nil
	}

	var sections []Section
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			p.errorf(key, "section name must be a string, found %s", kindName(key))
			continue
		}
		sections = append(sections, Section{
			Name:  key.Value,
			Line:  key.Line,
			Steps: p.steps(val),
		})
	}
	return sections
}

func (p *parser) steps(n *yaml.Node) []Step {
	if n.Kind != yaml.SequenceNode {
		p.errorf(n, "expected sequence of steps but found %s", kindName(n))
		return nil
	}

	var steps []Step
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			p.errorf(item, "a step must be a mapping with a single key")
			continue
		}
		key, val := item.Content[0], item.Content[1]
		st := Step{Kind: key.Value, Line: key.Line}
		if key.Value == KindDo {
			d, ok := p.do(val)
			if !ok {
				continue
			}
			st.Do = d
		} else {
			v, err := rawvalue.FromNode(val)
			if err != nil {
				p.errorf(val, "%s: %v", key.Value, err)
				continue
			}
			st.Value = v
		}
		steps = append(steps, st)
	}
	return steps
}

// do reads a do step. It reports every problem it finds before giving up.
func (p *parser) do(n *yaml.Node) (*Do, bool) {
	if n.Kind != yaml.MappingNode {
		p.errorf(n, "expected mapping but found %s", kindName(n))
		return nil, false
	}

	var (
		d     Do
		calls []string
		ok    = true
	)
	d.Record.Source = p.source(n)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			p.errorf(key, "expected string key but found %s", kindName(key))
			ok = false
			continue
		}

		switch key.Value {
		case "headers":
			headers, err := stringMap(val)
			if err != nil {
				p.errorf(val, "headers: %v", err)
				ok = false
				continue
			}
			d.Record.Headers = headers
		case "catch":
			if val.Kind != yaml.ScalarNode {
				p.errorf(val, "catch: expected string but found %s", kindName(val))
				ok = false
				continue
			}
			d.Record.Catch = val.Value
		case "warnings", "allowed_warnings":
			warnings, err := stringList(val)
			if err != nil {
				p.errorf(val, "%s: %v", key.Value, err)
				ok = false
				continue
			}
			if key.Value == "warnings" {
				d.Record.Warnings = warnings
			} else {
				d.AllowedWarnings = warnings
			}
		case "node_selector":
			d.NodeSelector = true
		default:
			calls = append(calls, key.Value)
			args, err := rawvalue.FromNode(val)
			if err != nil {
				p.errorf(val, "%s: %v", key.Value, err)
				ok = false
				continue
			}
			rec, err := callgen.RecordFromValue(key.Value, args)
			if err != nil {
				p.errorf(val, "%s: expected mapping of arguments but found %s", key.Value, kindName(val))
				ok = false
				continue
			}
			d.Record.Operation = rec.Operation
			d.Record.Args = rec.Args
		}
	}

	switch len(calls) {
	case 0:
		p.errorf(n, "no API call found in do step")
		return nil, false
	case 1:
	default:
		p.errorf(n, "more than one API call in do step: %s", strings.Join(calls, ", "))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &d, true
}

func stringMap(n *yaml.Node) (map[string]string, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping but found %s", kindName(n))
	}
	m := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: expected string to string mapping", k.Line)
		}
		m[k.Value] = v.Value
	}
	return m, nil
}

func stringList(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected sequence but found %s", kindName(n))
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: expected string but found %s", item.Line, kindName(item))
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "null"
		}
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
