package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// typeLabels orders the asset type groups of the treemaps.
var typeLabels = []struct {
	t     hoodviz.AssetType
	label string
}{
	{hoodviz.Stock, "Stocks"},
	{hoodviz.ETP, "ETPs"},
	{hoodviz.Crypto, "Crypto"},
}

// renderTreemap boxes every holding by market value, grouped by asset type.
func renderTreemap(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	var groups []opts.TreeMapNode
	for _, tl := range typeLabels {
		node := opts.TreeMapNode{Name: tl.label}
		for _, p := range ps {
			if p.Type != tl.t {
				continue
			}
			node.Children = append(node.Children, opts.TreeMapNode{
				Name:  fmt.Sprintf("%s %s", p.Symbol, pct(p.Weight)),
				Value: int(p.MarketValue.IntPart()),
			})
		}
		if len(node.Children) > 0 {
			groups = append(groups, node)
		}
	}

	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(base("Portfolio Treemap", meta)...)
	tm.AddSeries("portfolio", groups).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return tm.Render(w)
}

// renderPerformanceTreemap boxes holdings by market value but groups them by
// whether they sit above or below their cost basis, with the dollar change in
// the label. Positions without a cost basis land in their own group instead
// of faking a 0% return.
func renderPerformanceTreemap(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	gainers := opts.TreeMapNode{Name: "Gainers"}
	losers := opts.TreeMapNode{Name: "Losers"}
	unknown := opts.TreeMapNode{Name: "No cost basis"}

	for _, p := range ps {
		node := opts.TreeMapNode{
			Name:  fmt.Sprintf("%s %s", p.Symbol, hoodviz.FormatUSD(p.EquityChange)),
			Value: int(p.MarketValue.IntPart()),
		}
		switch {
		case p.Return == nil:
			node.Name = p.Symbol
			unknown.Children = append(unknown.Children, node)
		case p.EquityChange.IsNegative():
			losers.Children = append(losers.Children, node)
		default:
			gainers.Children = append(gainers.Children, node)
		}
	}

	var groups []opts.TreeMapNode
	for _, g := range []opts.TreeMapNode{gainers, losers, unknown} {
		if len(g.Children) > 0 {
			groups = append(groups, g)
		}
	}

	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(base("Portfolio Performance Treemap", meta)...)
	tm.AddSeries("performance", groups).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return tm.Render(w)
}
