package gen

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/broady/callgen/cmd/callgen/internal/config"
	"github.com/broady/callgen/cmd/callgen/internal/run"
	"github.com/broady/callgen/sink"
)

type Cmd struct {
	config.Flags `embed:""`

	Out         string `arg:"" help:"Output directory for call reports." type:"path"`
	NoOverwrite bool   `help:"Fail instead of replacing existing reports." name:"no-overwrite"`
}

func (c *Cmd) Run() error {
	cfg, err := c.Resolve()
	if err != nil {
		return err
	}
	in, err := run.InputsFromConfig(cfg)
	if err != nil {
		return err
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	dst := sink.NewFilesystemSink(out)
	dst.Overwrite = !c.NoOverwrite

	opts := run.OptionsFromConfig(cfg, os.Stderr)
	opts.Sink = dst

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := run.Run(ctx, in, opts)
	fmt.Printf("✓ %d test files, %d records\n", sum.Files, sum.Records)
	if sum.Skipped > 0 {
		fmt.Printf("✓ %d records skipped\n", sum.Skipped)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %d records failed, %d test files invalid\n", sum.Failed, sum.Invalid)
		return err
	}
	fmt.Printf("✓ Reports written to %s\n", out)
	return nil
}
