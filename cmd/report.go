package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/perfsheet/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	runFlags
	raw bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display what the performance sheet would contain" }
func (*reportCmd) Usage() string {
	return `psheet report [-date <day>] [-asof] [-raw]

  Runs every stage without writing any workbook and displays a summary of
  the extracted figures.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.runFlags.SetFlags(f)
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it.")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, status := c.start()
	if p == nil {
		return status
	}
	p.dryRun = true
	failed := p.runAll(ctx, os.Stderr)

	md := renderer.ReportMarkdown(&p.report)
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
