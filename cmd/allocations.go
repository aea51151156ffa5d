package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type allocationsCmd struct {
	runFlags
}

func (*allocationsCmd) Name() string { return "allocations" }
func (*allocationsCmd) Synopsis() string {
	return "fill the regional allocation template with the country weights"
}
func (*allocationsCmd) Usage() string {
	return `psheet allocations

  Computes the weight of every country excluding cash from the holdings
  export, writes them in the existing placeholders of the allocation
  template and saves the result in the Allocations sheet. Countries the
  template does not report are logged and dropped.
`
}

func (c *allocationsCmd) SetFlags(f *flag.FlagSet) { c.runFlags.SetFlags(f) }

func (c *allocationsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.runStage(ctx, "allocations")
}
