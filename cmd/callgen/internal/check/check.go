package check

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/broady/callgen/cmd/callgen/internal/config"
	"github.com/broady/callgen/cmd/callgen/internal/run"
)

type Cmd struct {
	config.Flags `embed:""`
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Nothing is written in check mode; the sink stays nil.
	sum, err := run.Run(ctx, in, run.OptionsFromConfig(cfg, os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %d of %d records failed, %d test files invalid\n", sum.Failed, sum.Records, sum.Invalid)
		return err
	}

	fmt.Printf("✓ %d test files, %d records\n", sum.Files, sum.Records)
	fmt.Println("✓ All records generate")
	return nil
}
