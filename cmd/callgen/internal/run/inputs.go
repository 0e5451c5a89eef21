package run

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/callgen/cmd/callgen/internal/config"
)

// InputsFromConfig opens the directories and files named by cfg.
func InputsFromConfig(cfg *config.Config) (Inputs, error) {
	var in Inputs
	if cfg.OpenAPI != "" {
		data, err := os.ReadFile(cfg.OpenAPI)
		if err != nil {
			return in, fmt.Errorf("read openapi: %w", err)
		}
		in.OpenAPI = data
	} else {
		if err := checkDir(cfg.Spec); err != nil {
			return in, fmt.Errorf("spec: %w", err)
		}
		in.Spec = os.DirFS(cfg.Spec)
	}
	if err := checkDir(cfg.Tests); err != nil {
		return in, fmt.Errorf("tests: %w", err)
	}
	in.Tests = os.DirFS(cfg.Tests)
	return in, nil
}

// OptionsFromConfig builds run options from cfg, logging to w.
func OptionsFromConfig(cfg *config.Config, w io.Writer) Options {
	return Options{
		Generator: cfg.Options(),
		Workers:   cfg.Workers,
		Skip:      cfg.Skip,
		Logger:    slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()})),
	}
}

func checkDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
