// Package chart renders the portfolio dataset into self-contained
// interactive HTML documents.
//
// Every chart is a pure function from the enriched dataset to one document;
// no chart depends on another chart's output, and RenderAll keeps going when
// one of them fails.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// palette is the rotation used across all charts. No white: labels are drawn
// on top of the slices.
var palette = opts.Colors{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFD93D", "#FF8C42", "#6C5B7B", "#C06C84",
	"#88D8B0", "#B5EAD7", "#E2F0CB", "#FFDAC1",
	"#9B7EDE", "#FF9A8B", "#98DDCA", "#D4A5A5",
}

const background = "rgb(17, 17, 17)"

// Meta is the run context shared by every chart.
type Meta struct {
	Total     string    // formatted total portfolio value, for subtitles
	At        time.Time // snapshot time
	MinWeight float64   // holdings below this weight are grouped as "Other"
}

func (m Meta) subtitle() string {
	return fmt.Sprintf("Total %s as of %s", m.Total, m.At.Format("2006-01-02 15:04"))
}

// RenderError reports a single chart that could not be produced.
type RenderError struct {
	Chart string
	Err   error
}

func (e *RenderError) Error() string { return fmt.Sprintf("chart %s failed: %v", e.Chart, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// Result is the per-chart outcome of a RenderAll run.
type Result struct {
	Chart string
	Path  string
	Err   error
}

// renderers is the fixed set of charts, in the order they are reported.
// File names are deterministic so reruns overwrite in place.
var renderers = []struct {
	name   string
	file   string
	render func(w io.Writer, ps []hoodviz.EnrichedPosition, score hoodviz.Score, meta Meta) error
}{
	{"allocation pie", "allocation_pie.html", renderAllocationPie},
	{"holdings bar", "holdings_bar.html", renderHoldingsBar},
	{"treemap", "treemap.html", renderTreemap},
	{"performance treemap", "performance_treemap.html", renderPerformanceTreemap},
	{"etp vs stocks", "etp_vs_stocks.html", renderETPvsStocks},
	{"asset types", "asset_types.html", renderAssetTypes},
	{"risk return", "risk_return.html", renderRiskReturn},
	{"diversification gauge", "diversification.html", renderGauge},
}

// RenderAll produces every chart into dir and reports the per-chart outcome.
// One failing chart never prevents the others from being written.
func RenderAll(dir string, ps []hoodviz.EnrichedPosition, score hoodviz.Score, meta Meta) []Result {
	if err := os.MkdirAll(dir, 0755); err != nil {
		results := make([]Result, 0, len(renderers))
		for _, r := range renderers {
			results = append(results, Result{Chart: r.name, Err: &RenderError{r.name, err}})
		}
		return results
	}

	results := make([]Result, 0, len(renderers))
	for _, r := range renderers {
		path := filepath.Join(dir, r.file)
		if err := renderOne(path, ps, score, meta, r.render); err != nil {
			results = append(results, Result{Chart: r.name, Path: path, Err: &RenderError{r.name, err}})
			continue
		}
		results = append(results, Result{Chart: r.name, Path: path})
	}
	return results
}

func renderOne(path string, ps []hoodviz.EnrichedPosition, score hoodviz.Score, meta Meta,
	render func(io.Writer, []hoodviz.EnrichedPosition, hoodviz.Score, Meta) error) (err error) {
	// A renderer choking on unexpected data (a new asset type, a weird
	// symbol) must not take the whole run down with it.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render(f, ps, score, meta)
}

// base assembles the global options shared by every chart.
func base(title string, meta Meta) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			BackgroundColor: background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: meta.subtitle(),
			TitleStyle: &opts.TextStyle{
				Color:    "#808080",
				FontSize: 24,
			},
			SubtitleStyle: &opts.TextStyle{
				Color: "#808080",
			},
		}),
		charts.WithColorsOpts(palette),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }
