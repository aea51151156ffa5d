package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type holdingsCmd struct {
	runFlags
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "extract the holdings table from the brokerage export" }
func (*holdingsCmd) Usage() string {
	return `psheet holdings [-date <day>]

  Reads the raw holdings export, associates every security with the
  country header preceding it, replaces the cash line by a synthetic cash
  holding and writes the sorted table in the Holdings sheet.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) { c.runFlags.SetFlags(f) }

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.runStage(ctx, "holdings")
}
