package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hoodviz/hoodviz"
	"github.com/hoodviz/hoodviz/chart"
	"github.com/hoodviz/hoodviz/report"
)

// chartsCmd holds the flags for the 'charts' subcommand.
type chartsCmd struct {
	refresh   bool
	minWeight float64
}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "fetch the portfolio and render every chart" }
func (*chartsCmd) Usage() string {
	return `hv charts [-refresh] [-min-weight <pct>]

  Loads the portfolio (from the cache when it is fresh, from Robinhood
  otherwise), computes weights, returns and the diversification score, and
  writes one interactive HTML document per chart plus an index page into the
  output directory.
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "ignore the cached snapshot and refetch from the brokerage")
	f.Float64Var(&c.minWeight, "min-weight", 1.0, "group holdings below this weight (in percent) as 'Other'")
}

func (c *chartsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, skipped, err := loadSnapshot(c.refresh)
	if err != nil {
		if errors.Is(err, hoodviz.ErrAuthentication) {
			fmt.Fprintf(os.Stderr, "Error: %v\nRun 'hv login' and try again.\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}

	enriched := hoodviz.Enrich(snap)
	score := hoodviz.Diversify(snap)

	meta := chart.Meta{
		Total:     hoodviz.FormatUSD(snap.TotalValue),
		At:        snap.Time,
		MinWeight: c.minWeight / 100,
	}
	results := chart.RenderAll(*outDir, enriched, score, meta)

	summary := report.Summary(snap, enriched, score)
	printMarkdown(summary)

	if err := report.WriteIndex(*outDir, summary, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing index: %v\n", err)
	}

	// end of run report: every skipped record and failed chart, no silent loss
	for _, err := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped record: %v\n", err)
	}
	produced := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", r.Err)
			continue
		}
		fmt.Printf("Saved %s to %s\n", r.Chart, r.Path)
		produced++
	}
	fmt.Printf("Produced %d/%d charts in %s\n", produced, len(results), *outDir)

	// charts are best effort once the data is sound
	return subcommands.ExitSuccess
}
