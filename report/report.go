// Package report builds the textual companion to the charts: a markdown
// summary of the portfolio, printable on the terminal, and an HTML index page
// linking every produced chart.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"

	"github.com/hoodviz/hoodviz"
	"github.com/hoodviz/hoodviz/chart"
)

// topHoldings caps the summary table; the charts show the full book.
const topHoldings = 5

// Summary renders the portfolio as a markdown document: total value, the top
// holdings, per-type totals and the diversification score.
func Summary(s *hoodviz.Snapshot, enriched []hoodviz.EnrichedPosition, score hoodviz.Score) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", s.Time.Format("2006-01-02 15:04")))
	doc.PlainText(fmt.Sprintf("Total Portfolio Value: %s across %d holdings.",
		hoodviz.FormatUSD(s.TotalValue), len(s.Positions)))

	doc.H2("Top Holdings")
	rows := make([][]string, 0, topHoldings)
	for i, e := range enriched {
		if i == topHoldings {
			break
		}
		ret := "-"
		if e.Return != nil {
			ret = fmt.Sprintf("%+.2f%%", *e.Return*100)
		}
		rows = append(rows, []string{
			e.Symbol,
			string(e.Type),
			hoodviz.FormatUSD(e.MarketValue),
			fmt.Sprintf("%.2f%%", e.Weight*100),
			ret,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Type", "Value", "Weight", "Return"},
		Rows:   rows,
	})

	doc.H2("Asset Types")
	doc.Table(md.TableSet{
		Header: []string{"Type", "Value", "Weight"},
		Rows:   typeRows(enriched),
	})

	doc.H2("Diversification")
	if score.NoData {
		doc.PlainText("No data to score diversification.")
	} else {
		doc.PlainText(fmt.Sprintf("Score %.1f/100 (%s), HHI %.4f.", score.Value, score.Band(), score.HHI))
	}

	return doc.String()
}

func typeRows(enriched []hoodviz.EnrichedPosition) [][]string {
	type agg struct {
		value  decimal.Decimal
		weight float64
	}
	totals := map[hoodviz.AssetType]*agg{}
	for _, e := range enriched {
		a, ok := totals[e.Type]
		if !ok {
			a = &agg{}
			totals[e.Type] = a
		}
		a.value = a.value.Add(e.MarketValue)
		a.weight += e.Weight
	}

	var rows [][]string
	for _, t := range []hoodviz.AssetType{hoodviz.Stock, hoodviz.ETP, hoodviz.Crypto} {
		a, ok := totals[t]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(t),
			hoodviz.FormatUSD(a.value),
			fmt.Sprintf("%.2f%%", a.weight*100),
		})
	}
	return rows
}

// Holdings renders the complete position table, one row per holding, in the
// snapshot's descending value order.
func Holdings(s *hoodviz.Snapshot, enriched []hoodviz.EnrichedPosition) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings on %s", s.Time.Format("2006-01-02 15:04")))
	rows := make([][]string, 0, len(enriched))
	for _, e := range enriched {
		ret := "-"
		if e.Return != nil {
			ret = fmt.Sprintf("%+.2f%%", *e.Return*100)
		}
		rows = append(rows, []string{
			e.Symbol,
			string(e.Type),
			e.Quantity.String(),
			hoodviz.FormatUSD(e.Price),
			hoodviz.FormatUSD(e.MarketValue),
			fmt.Sprintf("%.2f%%", e.Weight*100),
			ret,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Type", "Quantity", "Price", "Value", "Weight", "Return"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total Portfolio Value: %s", hoodviz.FormatUSD(s.TotalValue)))
	return doc.String()
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Portfolio</title>
<style>
 body { background: rgb(17,17,17); color: #ccc; font-family: sans-serif; margin: 2em auto; max-width: 60em; }
 a { color: #4ECDC4; }
 table { border-collapse: collapse; }
 th, td { border: 1px solid #444; padding: 0.3em 0.8em; }
</style>
</head>
<body>
{{.Summary}}
<h2>Charts</h2>
<ul>
{{range .Charts}} <li><a href="{{.File}}">{{.Name}}</a></li>
{{end}}</ul>
{{if .Failed}}<h2>Failed charts</h2>
<ul>
{{range .Failed}} <li>{{.}}</li>
{{end}}</ul>{{end}}
</body>
</html>
`))

// WriteIndex converts the markdown summary to HTML and writes dir/index.html
// with links to every chart that rendered.
func WriteIndex(dir, summary string, results []chart.Result) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(summary), &body); err != nil {
		return fmt.Errorf("cannot render summary: %w", err)
	}

	data := struct {
		Summary template.HTML
		Charts  []struct{ Name, File string }
		Failed  []string
	}{Summary: template.HTML(body.String())}
	for _, r := range results {
		if r.Err != nil {
			data.Failed = append(data.Failed, r.Chart)
			continue
		}
		data.Charts = append(data.Charts, struct{ Name, File string }{r.Chart, filepath.Base(r.Path)})
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("cannot write index: %w", err)
	}
	defer f.Close()
	return indexTmpl.Execute(f, data)
}
