package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type performanceCmd struct {
	runFlags
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "extract the strategy returns from the monthly performance export" }
func (*performanceCmd) Usage() string {
	return `psheet performance [-date <day>] [-asof]

  Reads the performance export of the previous month end, locates every
  strategy by its title and writes its gross and net returns in the
  Performance sheet, stamped with the day of the run (or the previous
  month end with -asof).
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) { c.runFlags.SetFlags(f) }

func (c *performanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.runStage(ctx, "performance")
}
