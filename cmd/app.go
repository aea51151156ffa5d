// Package cmd implements the CLI application that builds the performance
// sheet.
package cmd

import (
	"flag"

	"github.com/etnz/perfsheet/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are the subcommands of the application, main registers them.
var Commands = []subcommands.Command{
	&holdingsCmd{},
	&performanceCmd{},
	&allocationsCmd{},
	&characteristicsCmd{},
	&runCmd{},
	&reportCmd{},
	&inspectCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "perfsheet.yaml", "Path to the YAML configuration file. Optional unless set explicitly.")
	baseDir    = flag.String("base", "", "Base directory of the source and output workbooks. Overrides the configuration.")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the configuration.")
	pretty     = flag.Bool("pretty", false, "Human friendly logs instead of JSON.")
)

// logger is the application logger, set up by loadConfig.
var logger = zerolog.Nop()

// loadConfig loads the configuration file, applies the global flags and
// sets the application logger up.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile, isFlagSet("config"))
	if err != nil {
		return nil, err
	}
	if *baseDir != "" {
		cfg.BaseDir = *baseDir
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *pretty {
		cfg.Logging.Pretty = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = newLogger(cfg.Logging)
	return cfg, nil
}

// isFlagSet reports whether the global flag name was given on the command line.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
