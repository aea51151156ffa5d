package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type runCmd struct {
	runFlags
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run every stage of the performance sheet" }
func (*runCmd) Usage() string {
	return `psheet run [-date <day>] [-asof]

  Runs the holdings, performance, allocations and characteristics stages in
  that order. A failing stage is reported and the next one runs anyway.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) { c.runFlags.SetFlags(f) }

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, status := c.start()
	if p == nil {
		return status
	}
	if failed := p.runAll(ctx, os.Stderr); failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d stages failed\n", failed, len(stages))
		return subcommands.ExitFailure
	}
	fmt.Printf("Performance sheet of %s written in %s\n", p.report.Date, p.cfg.BaseDir)
	return subcommands.ExitSuccess
}
