package chart

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hoodviz/hoodviz"
	"github.com/shopspring/decimal"
)

func enriched(t *testing.T) ([]hoodviz.EnrichedPosition, hoodviz.Score) {
	t.Helper()
	s, skipped, err := hoodviz.Normalize([]hoodviz.RawPosition{
		{Symbol: "AAPL", Name: "Apple", Quantity: "10", Price: "150.00", AverageCost: "100.00", TypeFlag: "stock"},
		{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", Quantity: "2", Price: "400.00", AverageCost: "410.00", TypeFlag: "etp"},
		{Symbol: "BTC", Name: "Bitcoin", Quantity: "0.01", Price: "60000.00", FromCrypto: true},
		{Symbol: "DUST", Quantity: "1", Price: "1.00", AverageCost: "1.00", TypeFlag: "stock"},
	}, decimal.NewFromInt(2901), time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	if err != nil || len(skipped) != 0 {
		t.Fatalf("Normalize() = %v skipped=%v, want clean run", err, skipped)
	}
	return hoodviz.Enrich(s), hoodviz.Diversify(s)
}

func testMeta() Meta {
	return Meta{
		Total:     "$2,901.00",
		At:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		MinWeight: 0.01,
	}
}

func TestRenderAll(t *testing.T) {
	ps, score := enriched(t)
	dir := t.TempDir()

	results := RenderAll(dir, ps, score, testMeta())
	if len(results) != len(renderers) {
		t.Fatalf("got %d results, want %d", len(results), len(renderers))
	}

	for _, r := range results {
		if r.Err != nil {
			t.Errorf("chart %q failed: %v", r.Chart, r.Err)
			continue
		}
		info, err := os.Stat(r.Path)
		if err != nil {
			t.Errorf("chart %q produced no file: %v", r.Chart, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("chart %q produced an empty file", r.Chart)
		}
	}

	// deterministic names, stable across runs
	for _, want := range []string{
		"allocation_pie.html", "holdings_bar.html", "treemap.html",
		"performance_treemap.html", "etp_vs_stocks.html", "asset_types.html",
		"risk_return.html", "diversification.html",
	} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}
}

func TestRenderAll_GroupsDust(t *testing.T) {
	ps, score := enriched(t)
	dir := t.TempDir()

	meta := testMeta()
	meta.MinWeight = 0.02 // DUST weighs well under 2%

	RenderAll(dir, ps, score, meta)
	data, err := os.ReadFile(filepath.Join(dir, "allocation_pie.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Other") {
		t.Error("allocation pie does not group small holdings as Other")
	}
	if strings.Contains(string(data), "DUST") {
		t.Error("allocation pie still lists a holding below the minimum weight")
	}
}

func TestRenderAll_UnwritableDir(t *testing.T) {
	ps, score := enriched(t)

	// a file where the output directory should be
	blocked := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	results := RenderAll(blocked, ps, score, testMeta())
	if len(results) != len(renderers) {
		t.Fatalf("got %d results, want %d", len(results), len(renderers))
	}
	for _, r := range results {
		var re *RenderError
		if r.Err == nil || !errors.As(r.Err, &re) {
			t.Errorf("chart %q error = %v, want RenderError", r.Chart, r.Err)
		}
	}
}

func TestRenderOne_RecoversPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boom.html")
	err := renderOne(path, nil, hoodviz.Score{}, testMeta(),
		func(io.Writer, []hoodviz.EnrichedPosition, hoodviz.Score, Meta) error {
			panic("malformed color mapping")
		})
	if err == nil || !strings.Contains(err.Error(), "malformed color mapping") {
		t.Errorf("renderOne() error = %v, want recovered panic", err)
	}
}

func TestRenderGauge_NoData(t *testing.T) {
	dir := t.TempDir()
	results := RenderAll(dir, nil, hoodviz.Score{NoData: true}, testMeta())
	for _, r := range results {
		if r.Chart != "diversification gauge" {
			continue
		}
		if r.Err != nil {
			t.Fatalf("gauge failed on no-data score: %v", r.Err)
		}
		data, err := os.ReadFile(r.Path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "no data") {
			t.Error("gauge title does not carry the no-data band")
		}
	}
}
