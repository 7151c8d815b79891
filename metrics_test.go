package hoodviz

import (
	"fmt"
	"math"
	"testing"
)

func snapshotOf(t *testing.T, total string, raws ...RawPosition) *Snapshot {
	t.Helper()
	s, skipped, err := Normalize(raws, d(total), noon)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("Normalize() = %v skipped=%v, want clean run", err, skipped)
	}
	return s
}

func TestEnrich_WeightsSumToOne(t *testing.T) {
	for _, n := range []int{1, 3, 7, 40} {
		t.Run(fmt.Sprintf("%d positions", n), func(t *testing.T) {
			raws := make([]RawPosition, 0, n)
			for i := 0; i < n; i++ {
				raws = append(raws, RawPosition{
					Symbol:      fmt.Sprintf("S%d", i),
					Quantity:    "2",
					Price:       fmt.Sprintf("%d.50", 10+i),
					AverageCost: "10",
				})
			}
			total := 0.0
			for i := 0; i < n; i++ {
				total += 2 * (float64(10+i) + 0.5)
			}
			s := snapshotOf(t, fmt.Sprintf("%.2f", total), raws...)

			sum := 0.0
			for _, e := range Enrich(s) {
				sum += e.Weight
			}
			if math.Abs(sum-1) > weightTolerance {
				t.Errorf("weights sum to %v, want 1 within %v", sum, weightTolerance)
			}
		})
	}
}

func TestEnrich_Return(t *testing.T) {
	s := snapshotOf(t, "200",
		RawPosition{Symbol: "AAA", Quantity: "10", Price: "10.00", AverageCost: "8.00"},
		RawPosition{Symbol: "BBB", Quantity: "5", Price: "20.00", AverageCost: "25.00"},
		RawPosition{Symbol: "FREE", Quantity: "1", Price: "1.00"},
	)
	// FREE has value 1, so weights shift; only the returns matter here.
	byS := map[string]EnrichedPosition{}
	for _, e := range Enrich(s) {
		byS[e.Symbol] = e
	}

	if r := byS["AAA"].Return; r == nil || math.Abs(*r-0.25) > 1e-9 {
		t.Errorf("AAA return = %v, want 0.25", r)
	}
	if r := byS["BBB"].Return; r == nil || math.Abs(*r+0.20) > 1e-9 {
		t.Errorf("BBB return = %v, want -0.20", r)
	}
	if r := byS["FREE"].Return; r != nil {
		t.Errorf("FREE return = %v, want nil for zero cost basis", *r)
	}
}

func TestEnrich_ZeroTotal(t *testing.T) {
	s := snapshotOf(t, "0", RawPosition{Symbol: "AAA", Quantity: "1", Price: "0.00", AverageCost: "1"})
	for _, e := range Enrich(s) {
		if e.Weight != 0 {
			t.Errorf("weight = %v, want 0 when total value is 0", e.Weight)
		}
	}
}

func TestEnrich_Empty(t *testing.T) {
	if got := Enrich(nil); got != nil {
		t.Errorf("Enrich(nil) = %v, want nil", got)
	}
	if got := Enrich(&Snapshot{}); got != nil {
		t.Errorf("Enrich(empty) = %v, want nil", got)
	}
}

func TestDiversify(t *testing.T) {
	t.Run("single holding scores 0", func(t *testing.T) {
		s := snapshotOf(t, "100", RawPosition{Symbol: "ONLY", Quantity: "10", Price: "10", AverageCost: "10"})
		score := Diversify(s)
		if score.Value != 0 {
			t.Errorf("score = %v, want 0", score.Value)
		}
		if got := score.Band(); got != "concentrated" {
			t.Errorf("band = %q, want concentrated", got)
		}
	})

	t.Run("N equal weights score (1-1/N)*100", func(t *testing.T) {
		for _, n := range []int{2, 4, 10} {
			raws := make([]RawPosition, 0, n)
			for i := 0; i < n; i++ {
				raws = append(raws, RawPosition{Symbol: fmt.Sprintf("S%d", i), Quantity: "1", Price: "10", AverageCost: "10"})
			}
			s := snapshotOf(t, fmt.Sprintf("%d", 10*n), raws...)
			want := (1 - 1/float64(n)) * 100
			if got := Diversify(s).Value; math.Abs(got-want) > 1e-6 {
				t.Errorf("N=%d score = %v, want %v", n, got, want)
			}
		}
	})

	t.Run("score stays in bounds", func(t *testing.T) {
		s := snapshotOf(t, "101",
			RawPosition{Symbol: "A", Quantity: "1", Price: "100", AverageCost: "1"},
			RawPosition{Symbol: "B", Quantity: "1", Price: "1", AverageCost: "1"},
		)
		score := Diversify(s)
		if score.Value < 0 || score.Value > 100 {
			t.Errorf("score = %v, want within [0,100]", score.Value)
		}
	})

	t.Run("zero total has no data", func(t *testing.T) {
		s := snapshotOf(t, "0", RawPosition{Symbol: "A", Quantity: "1", Price: "0.00", AverageCost: "1"})
		score := Diversify(s)
		if !score.NoData || score.Value != 0 {
			t.Errorf("score = %+v, want zero no-data score", score)
		}
		if got := score.Band(); got != "no data" {
			t.Errorf("band = %q, want no data", got)
		}
	})

	t.Run("empty snapshot has no data", func(t *testing.T) {
		if got := Diversify(nil); !got.NoData {
			t.Errorf("Diversify(nil) = %+v, want no-data score", got)
		}
	})
}

func TestScoreBands(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "concentrated"},
		{32.9, "concentrated"},
		{33, "moderate"},
		{50, "moderate"},
		{66, "diversified"},
		{100, "diversified"},
	}
	for _, tc := range tests {
		if got := (Score{Value: tc.value}).Band(); got != tc.want {
			t.Errorf("Band(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

// The reference scenario: two stocks, equal values, opposite returns.
func TestPipeline_TwoStockScenario(t *testing.T) {
	raws := []RawPosition{
		{Symbol: "AAA", Quantity: "10", Price: "10.00", AverageCost: "8.00", TypeFlag: "stock"},
		{Symbol: "BBB", Quantity: "5", Price: "20.00", AverageCost: "25.00", TypeFlag: "stock"},
	}
	s, skipped, err := Normalize(raws, d("200"), noon)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("Normalize() = %v skipped=%v, want clean run", err, skipped)
	}

	if got := s.Positions[0].Symbol; got != "AAA" {
		t.Errorf("first position = %s, want AAA (tie broken by symbol)", got)
	}

	enriched := Enrich(s)
	for i, want := range []struct {
		symbol string
		value  string
		weight float64
		ret    float64
	}{
		{"AAA", "100", 0.5, 0.25},
		{"BBB", "100", 0.5, -0.20},
	} {
		e := enriched[i]
		if e.Symbol != want.symbol {
			t.Fatalf("enriched[%d] = %s, want %s", i, e.Symbol, want.symbol)
		}
		if !e.MarketValue.Equal(d(want.value)) {
			t.Errorf("%s market value = %s, want %s", e.Symbol, e.MarketValue, want.value)
		}
		if math.Abs(e.Weight-want.weight) > 1e-9 {
			t.Errorf("%s weight = %v, want %v", e.Symbol, e.Weight, want.weight)
		}
		if e.Return == nil || math.Abs(*e.Return-want.ret) > 1e-9 {
			t.Errorf("%s return = %v, want %v", e.Symbol, e.Return, want.ret)
		}
	}

	score := Diversify(s)
	if math.Abs(score.HHI-0.5) > 1e-9 {
		t.Errorf("HHI = %v, want 0.5", score.HHI)
	}
	if math.Abs(score.Value-50) > 1e-9 {
		t.Errorf("score = %v, want 50", score.Value)
	}
	if got := score.Band(); got != "moderate" {
		t.Errorf("band = %q, want moderate", got)
	}
}
