package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/callgen/cmd/callgen/internal/check"
	"github.com/broady/callgen/cmd/callgen/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate call reports for a directory of YAML tests."`
	Check   check.Cmd  `cmd:"" help:"Generate every call without writing reports."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("callgen"),
		kong.Description("Generate typed client calls from YAML API tests."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
