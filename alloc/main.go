package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/allocation/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and returns immediately in
// a normal run.
func completion() {
	files := map[string]complete.Predictor{
		"config":   predict.Files("*.yaml"),
		"holdings": predict.Files("*.yaml"),
		"offline":  predict.Nothing,
	}
	invest := map[string]complete.Predictor{"amount": predict.Something}
	for k, v := range files {
		invest[k] = v
	}
	complete.Complete("alloc", &complete.Command{
		Sub: map[string]*complete.Command{
			"invest":    {Flags: invest},
			"rebalance": {Flags: files},
			"divest":    {Flags: files},
			"snapshot":  {Flags: files},
			"topic":     {Args: predict.Set{"readme", "rebalancing", "lazy-investing", "configuration", "*"}},
		},
	})
}
