// Package config loads callgen's YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/callgen"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "callgen.yaml"

// Config is the generator configuration.
type Config struct {
	// Spec is a directory of rest-api-spec JSON files.
	Spec string `yaml:"spec" validate:"required_without=OpenAPI,excluded_with=OpenAPI"`

	// OpenAPI is an OpenAPI 3 document used instead of Spec.
	OpenAPI string `yaml:"openapi"`

	// Tests is the directory of YAML tests.
	Tests string `yaml:"tests" validate:"required"`

	// Workers bounds concurrent generation; 0 means one per record.
	Workers int `yaml:"workers" validate:"gte=0"`

	// Skip lists operations that are never generated.
	Skip []string `yaml:"skip" validate:"dive,required"`

	// ListEnumParams and EmptyEnumDefaults override the generator defaults.
	ListEnumParams    []string          `yaml:"list_enum_params" validate:"omitempty,dive,required"`
	EmptyEnumDefaults map[string]string `yaml:"empty_enum_defaults" validate:"omitempty,dive,keys,required,endkeys"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration, reporting every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options returns the generator options the configuration selects.
// Interceptors are left to the caller.
func (c *Config) Options() callgen.Options {
	return callgen.Options{
		ListEnumParams:    c.ListEnumParams,
		EmptyEnumDefaults: c.EmptyEnumDefaults,
	}
}
