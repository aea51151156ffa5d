package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/perfsheet/date"
	"github.com/google/subcommands"
)

// runFlags are the flags shared by the commands running stages.
type runFlags struct {
	date string
	asOf bool
}

func (r *runFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.date, "date", "", "Day of the run (YYYY-MM-DD), defaults to today. The performance export of the previous month end is read.")
	f.BoolVar(&r.asOf, "asof", false, "Stamp the performance with the end of the previous month instead of the day of the run.")
}

// start loads the configuration and returns a pipeline for the run day.
func (r *runFlags) start() (*pipeline, subcommands.ExitStatus) {
	today := date.Today()
	if r.date != "" {
		d, err := date.Parse(r.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return nil, subcommands.ExitUsageError
		}
		today = d
	}
	asOf := today
	if r.asOf {
		asOf = today.EndOfPreviousMonth()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return newPipeline(cfg, today, asOf, logger), subcommands.ExitSuccess
}

// runStage runs the stage called name and writes its sheet.
func (r *runFlags) runStage(ctx context.Context, name string) subcommands.ExitStatus {
	p, status := r.start()
	if p == nil {
		return status
	}
	if err := p.runStage(ctx, stageByName(name)); err != nil {
		reportStageError(os.Stderr, name, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
