package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// renderHoldingsBar draws every holding's weight as a horizontal bar.
// Positions arrive sorted by market value, so reversing them puts the
// largest bar on top.
func renderHoldingsBar(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	symbols := make([]string, 0, len(ps))
	data := make([]opts.BarData, 0, len(ps))
	other := 0.0
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		if p.Weight < meta.MinWeight {
			other += p.Weight
			continue
		}
		symbols = append(symbols, p.Symbol)
		data = append(data, opts.BarData{Value: p.Weight * 100})
	}
	if other > 0 {
		symbols = append([]string{"Other"}, symbols...)
		data = append([]opts.BarData{{Value: other * 100}}, data...)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(base("Portfolio Allocation by Symbol", meta),
		charts.WithXAxisOpts(opts.XAxis{Name: "Portfolio %"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Symbol"}),
	)...)
	bar.SetXAxis(symbols).AddSeries("weight", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "right",
			Formatter: "{c}%",
		}))
	bar.XYReversal()
	return bar.Render(w)
}
