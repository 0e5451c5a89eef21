package config

import (
	"errors"
	"io/fs"
	"os"
)

// Flags are the command-line settings shared by gen and check.
// Set flags override the configuration file.
type Flags struct {
	Config   string   `help:"Configuration file (default: ./callgen.yaml if present)." short:"c" type:"path"`
	Spec     string   `help:"Directory of rest-api-spec JSON files." type:"path"`
	OpenAPI  string   `help:"OpenAPI document to use instead of --spec." name:"openapi" type:"path"`
	Tests    string   `help:"Directory of YAML tests." short:"t" type:"path"`
	Workers  int      `help:"Maximum concurrent generations (0: unbounded)." short:"j"`
	Skip     []string `help:"Operations to skip."`
	LogLevel string   `help:"Log level: debug, info, warn or error." name:"log-level"`
}

// Resolve loads the configuration file, applies the flags over it and
// validates the result.
func (f *Flags) Resolve() (*Config, error) {
	cfg := &Config{}

	path := f.Config
	if path == "" && exists(DefaultFile) {
		path = DefaultFile
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg, err = decode(data)
		if err != nil {
			return nil, err
		}
	}

	if f.Spec != "" {
		cfg.Spec, cfg.OpenAPI = f.Spec, ""
	}
	if f.OpenAPI != "" {
		cfg.OpenAPI, cfg.Spec = f.OpenAPI, ""
	}
	if f.Tests != "" {
		cfg.Tests = f.Tests
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
	cfg.Skip = append(cfg.Skip, f.Skip...)
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
