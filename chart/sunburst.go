package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// renderAssetTypes draws the stock/ETP/crypto split as a sunburst, with each
// type's holdings as the outer ring.
func renderAssetTypes(w io.Writer, ps []hoodviz.EnrichedPosition, _ hoodviz.Score, meta Meta) error {
	var data []opts.SunBurstData
	for _, tl := range typeLabels {
		group := opts.SunBurstData{Name: tl.label}
		for _, p := range ps {
			if p.Type != tl.t {
				continue
			}
			v, _ := p.MarketValue.Float64()
			group.Children = append(group.Children, &opts.SunBurstData{
				Name:  p.Symbol,
				Value: v,
			})
		}
		if len(group.Children) > 0 {
			data = append(data, group)
		}
	}

	sb := charts.NewSunburst()
	sb.SetGlobalOptions(base("Asset Type Distribution", meta)...)
	sb.AddSeries("types", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return sb.Render(w)
}
