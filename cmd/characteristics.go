package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type characteristicsCmd struct {
	runFlags
}

func (*characteristicsCmd) Name() string { return "characteristics" }
func (*characteristicsCmd) Synopsis() string {
	return "fill the characteristics template and copy it into the master workbook"
}
func (*characteristicsCmd) Usage() string {
	return `psheet characteristics

  Looks the portfolio characteristics up in the characteristics, sectors
  and market capitalization sheets, fills the formatted template with them
  and copies it, styles and layout included, into the Characteristics sheet
  of the master workbook.
`
}

func (c *characteristicsCmd) SetFlags(f *flag.FlagSet) { c.runFlags.SetFlags(f) }

func (c *characteristicsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.runStage(ctx, "characteristics")
}
