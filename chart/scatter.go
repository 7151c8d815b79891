package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// renderRiskReturn plots each holding's return against its portfolio weight.
// Positions without a cost basis have no return and are left out rather than
// plotted at 0%.
func renderRiskReturn(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	var data []opts.ScatterData
	for _, p := range ps {
		if p.Return == nil {
			continue
		}
		data = append(data, opts.ScatterData{
			Name:       p.Symbol,
			Value:      []interface{}{*p.Return * 100, p.Weight * 100},
			Symbol:     "circle",
			SymbolSize: 15,
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(base("Risk-Return Analysis", meta),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Return (%)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Portfolio Weight (%)"}),
	)...)
	scatter.AddSeries("positions", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
			Position:  "top",
		}))
	return scatter.Render(w)
}
