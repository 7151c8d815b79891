package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hoodviz/hoodviz"
	"github.com/hoodviz/hoodviz/report"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	refresh bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the current holdings table" }
func (*holdingCmd) Usage() string {
	return `hv holding [-refresh]

  Displays every open position with its weight and return, without rendering
  any chart.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "ignore the cached snapshot and refetch from the brokerage")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, skipped, err := loadSnapshot(c.refresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(report.Holdings(snap, hoodviz.Enrich(snap)))

	for _, err := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped record: %v\n", err)
	}
	return subcommands.ExitSuccess
}
