package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CommonFile is the rest-api-spec file holding schema-wide parameters.
const CommonFile = "_common.json"

//go:embed endpoint.schema.json
var endpointSchemaJSON []byte

//go:embed common.schema.json
var commonSchemaJSON []byte

var (
	fileSchemas     map[string]*jsonschema.Schema
	fileSchemasOnce sync.Once
	fileSchemasErr  error

	validate = validator.New()
)

func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	fileSchemasOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		sources := map[string][]byte{
			"endpoint.schema.json": endpointSchemaJSON,
			"common.schema.json":   commonSchemaJSON,
		}
		compiled := make(map[string]*jsonschema.Schema, len(sources))
		for name, src := range sources {
			if err := compiler.AddResource(name, bytes.NewReader(src)); err != nil {
				fileSchemasErr = fmt.Errorf("failed to add %s resource: %w", name, err)
				return
			}
		}
		for name := range sources {
			s, err := compiler.Compile(name)
			if err != nil {
				fileSchemasErr = fmt.Errorf("failed to compile %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
		fileSchemas = compiled
	})
	return fileSchemas, fileSchemasErr
}

// Decoded forms of the rest-api-spec JSON files.

type specEndpoint struct {
	Documentation json.RawMessage      `json:"documentation"`
	Stability     string               `json:"stability"`
	URL           specURL              `json:"url" validate:"required"`
	Params        map[string]specParam `json:"params" validate:"dive"`
	Body          *specBody            `json:"body"`
}

type specURL struct {
	Paths []specPath `json:"paths" validate:"required,min=1,dive"`
}

type specPath struct {
	Path    string               `json:"path" validate:"required,startswith=/"`
	Methods []string             `json:"methods" validate:"required,min=1"`
	Parts   map[string]specParam `json:"parts" validate:"dive"`
}

type specParam struct {
	Type        string          `json:"type" validate:"required"`
	Options     []string        `json:"options"`
	Description string          `json:"description"`
	Deprecated  json.RawMessage `json:"deprecated"`
}

type specBody struct {
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Serialize   string `json:"serialize" validate:"omitempty,oneof=bulk"`
}

type specCommon struct {
	Params map[string]specParam `json:"params" validate:"required,dive"`
}

// LoadDir loads every *.json file at the root of fsys into a Schema.
// CommonFile contributes schema-wide parameters; every other file contributes
// endpoints. Files are read in name order and every problem is reported, joined.
// The loaded schema is validated before it is returned.
func LoadDir(fsys fs.FS) (*Schema, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, errors.New("no rest-api-spec files found")
	}

	s := NewSchema()
	var errs []error
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", name, err))
			continue
		}
		if path.Base(name) == CommonFile {
			err = s.loadCommon(data)
		} else {
			err = s.loadEndpoints(data)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if verrs := s.Validate(); len(verrs) > 0 {
		return nil, fmt.Errorf("invalid schema: %w", errors.Join(verrs...))
	}
	return s, nil
}

func checkSchema(name string, data []byte) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := schemas[name].Validate(raw); err != nil {
		return fmt.Errorf("does not match %s: %w", name, err)
	}
	return nil
}

func (s *Schema) loadCommon(data []byte) error {
	if err := checkSchema("common.schema.json", data); err != nil {
		return err
	}
	var c specCommon
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	for name, sp := range c.Params {
		p, err := sp.param(name)
		if err != nil {
			return err
		}
		s.AddCommonParam(p)
	}
	return nil
}

func (s *Schema) loadEndpoints(data []byte) error {
	if err := checkSchema("endpoint.schema.json", data); err != nil {
		return err
	}
	var file map[string]specEndpoint
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}

	names := make([]string, 0, len(file))
	for name := range file {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		e, err := file[name].endpoint(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("endpoint %s: %w", name, err))
			continue
		}
		s.AddEndpoint(e)
	}
	return errors.Join(errs...)
}

func (se specEndpoint) endpoint(name string) (*Endpoint, error) {
	if err := validate.Struct(se); err != nil {
		return nil, err
	}

	e := &Endpoint{
		Name:          name,
		Stability:     se.Stability,
		Documentation: documentation(se.Documentation),
		Params:        make(map[string]Param, len(se.Params)),
	}

	for _, sp := range se.URL.Paths {
		t := URLTemplate{
			Path:    sp.Path,
			Methods: sp.Methods,
			Params:  PathParams(sp.Path),
			Parts:   make(map[string]Param, len(sp.Parts)),
		}
		for partName, part := range sp.Parts {
			p, err := part.param(partName)
			if err != nil {
				return nil, err
			}
			t.Parts[partName] = p
		}
		e.Templates = append(e.Templates, t)
	}

	for paramName, sp := range se.Params {
		p, err := sp.param(paramName)
		if err != nil {
			return nil, err
		}
		e.Params[paramName] = p
	}

	if se.Body != nil {
		e.Body = BodySingle
		if se.Body.Serialize == "bulk" {
			e.Body = BodyMulti
		}
	}
	return e, nil
}

func (sp specParam) param(name string) (Param, error) {
	kind, err := ParseTypeKind(sp.Type)
	if err != nil {
		return Param{}, fmt.Errorf("param %s: %w", name, err)
	}
	deprecated := len(sp.Deprecated) > 0 && string(sp.Deprecated) != "false" && string(sp.Deprecated) != "null"
	return Param{
		Name:        name,
		Type:        kind,
		Options:     sp.Options,
		Description: sp.Description,
		Deprecated:  deprecated,
	}, nil
}

// documentation accepts both the legacy string form and the {url, description} object.
func documentation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var doc struct {
		URL         *string `json:"url"`
		Description string  `json:"description"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	if doc.URL != nil && *doc.URL != "" {
		return *doc.URL
	}
	return strings.TrimSpace(doc.Description)
}
