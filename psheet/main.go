// Command psheet builds the monthly performance sheet workbooks.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/perfsheet/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	cmd.Completion(flag.CommandLine).Complete("psheet")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
