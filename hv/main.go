package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/hoodviz/hoodviz/cmd"
)

func main() {
	// shell completion, a no-op outside of a completion request
	completion().Complete("hv")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	refresh := map[string]complete.Predictor{"refresh": predict.Nothing}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"cache-file": predict.Files("*.json"),
			"out":        predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"charts": {Flags: map[string]complete.Predictor{
				"refresh":    predict.Nothing,
				"min-weight": predict.Something,
			}},
			"holding": {Flags: refresh},
			"assist":  {Flags: refresh},
			"login":   {Flags: map[string]complete.Predictor{"mfa": predict.Something}},
			"logout":  {},
		},
	}
}
