package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// renderAllocationPie draws the whole portfolio as one pie keyed by symbol.
// Holdings below meta.MinWeight are folded into a single "Other" slice so
// dust positions do not shred the chart.
func renderAllocationPie(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	var data []opts.PieData
	other := 0.0
	for _, p := range ps {
		if p.Weight < meta.MinWeight {
			other += p.Weight
			continue
		}
		data = append(data, opts.PieData{Name: p.Symbol, Value: p.Weight * 100})
	}
	if other > 0 {
		data = append(data, opts.PieData{Name: "Other", Value: other * 100})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(base("Portfolio Allocation by Symbol", meta)...)
	pie.AddSeries("allocation", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {d}%",
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{"30%", "70%"},
			}),
		)
	return pie.Render(w)
}

// renderETPvsStocks puts two donuts side by side on one page: the ETP sleeve
// and the stock sleeve, each summed by symbol. Crypto is deliberately absent
// here; it has its own slice in the asset type chart.
func renderETPvsStocks(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	sleeve := func(t hoodviz.AssetType, title string) *charts.Pie {
		var data []opts.PieData
		for _, p := range ps {
			if p.Type != t {
				continue
			}
			v, _ := p.MarketValue.Float64()
			data = append(data, opts.PieData{Name: p.Symbol, Value: v})
		}

		pie := charts.NewPie()
		pie.SetGlobalOptions(base(title, meta)...)
		pie.AddSeries(title, data).
			SetSeriesOptions(
				charts.WithLabelOpts(opts.Label{
					Show:      opts.Bool(true),
					Formatter: "{b}: {d}%",
				}),
				charts.WithPieChartOpts(opts.PieChart{
					Radius: []string{"30%", "70%"},
				}),
			)
		return pie
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		sleeve(hoodviz.ETP, "ETP Allocation"),
		sleeve(hoodviz.Stock, "Stock Allocation"),
	)
	return page.Render(w)
}
