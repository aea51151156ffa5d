package cmd

import (
	"flag"

	"github.com/etnz/perfsheet/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application, with global
// flags from top and the flags of every command in Commands.
func Completion(top *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(Commands)),
		Flags: flagPredictors(top),
	}
	for _, sub := range Commands {
		c.Sub[sub.Name()] = &complete.Command{Flags: flagPredictors(commandFlags(sub))}
	}
	if topics, err := docs.Topics(); err == nil {
		c.Sub["topic"].Args = predict.Set(topics)
	}
	return c
}

func commandFlags(c subcommands.Command) *flag.FlagSet {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	return fs
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = predictFlag(f)
	})
	return flags
}

func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "config":
		return predict.Files("*.yaml")
	case "base":
		return predict.Dirs("*")
	}
	return predict.Something
}
