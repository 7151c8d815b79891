package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hoodviz/hoodviz"
)

// renderGauge draws the diversification score on a 0-100 dial. The bands
// match Score.Band: below 33 is concentrated, 66 and above is diversified.
func renderGauge(w io.Writer, _ []hoodviz.EnrichedPosition, score hoodviz.Score, meta Meta) error {
	title := fmt.Sprintf("Diversification Score (%s)", score.Band())

	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(base(title, meta)...)
	gauge.AddSeries("diversification", []opts.GaugeData{
		{Name: "score", Value: score.Value},
	})
	return gauge.Render(w)
}
