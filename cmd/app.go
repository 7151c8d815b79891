// Package cmd implements the CLI application that fetches the portfolio and
// renders the charts.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/hoodviz/hoodviz"
	"github.com/hoodviz/hoodviz/robinhood"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&chartsCmd{}, "portfolio")
	c.Register(&holdingCmd{}, "portfolio")
	c.Register(&assistCmd{}, "portfolio")

	c.Register(&loginCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cacheFile = flag.String("cache-file", filepath.Join(os.TempDir(), "hoodviz-cache.json"), "Path to the snapshot cache file")
var outDir = flag.String("out", "visualizations", "Directory receiving the chart documents")

// loadSnapshot is the cache-or-fetch half of the pipeline: serve the cached
// snapshot when it is fresh, otherwise log in to the brokerage, fetch, merge,
// normalize and refill the cache. The skipped list carries the per-record
// errors for the end-of-run summary.
func loadSnapshot(refresh bool) (s *hoodviz.Snapshot, skipped []error, err error) {
	cache := hoodviz.NewCache(*cacheFile)
	if refresh {
		cache.Invalidate()
	}

	if s, ok := cache.Load(); ok {
		log.Printf("using cached snapshot from %s", s.Time.Format("2006-01-02 15:04"))
		return s, nil, nil
	}

	headers, err := robinhood.LoadHeaders()
	if err != nil {
		return nil, nil, err
	}

	raws, total, err := robinhood.Fetch(headers)
	if err != nil {
		return nil, nil, err
	}

	s, skipped, err = hoodviz.Normalize(raws, total, time.Now())
	if err != nil {
		return nil, skipped, err
	}

	if err := cache.Save(s); err != nil {
		// a broken cache only costs a refetch next run
		log.Printf("warning: %v", err)
	}
	return s, skipped, nil
}

// printMarkdown renders a markdown document on the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
