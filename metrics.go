package hoodviz

import (
	"log"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// weightTolerance bounds the floating point drift allowed on the sum of all
// weights of a non-empty snapshot.
const weightTolerance = 1e-6

// EnrichedPosition is a Position plus the derived per-holding metrics every
// chart consumes. It is recomputed on each run and never cached.
type EnrichedPosition struct {
	Position

	// Weight is the position's share of the total portfolio value, in [0,1].
	Weight float64

	// Return is the unrealized return fraction, (market value - cost basis) /
	// cost basis. Nil when the cost basis is zero (transferred or rewarded
	// shares), which is "unknown", not 0%.
	Return *float64

	// EquityChange is market value minus cost basis, exact.
	EquityChange decimal.Decimal
}

// Score is the portfolio diversification score derived from the
// Herfindahl-Hirschman Index of the weights: (1-HHI)*100, so 0 is a single
// holding and 100 a perfectly spread portfolio.
type Score struct {
	Value  float64
	HHI    float64
	NoData bool
}

// Band places the score in one of the gauge bands.
func (s Score) Band() string {
	switch {
	case s.NoData:
		return "no data"
	case s.Value < 33:
		return "concentrated"
	case s.Value < 66:
		return "moderate"
	default:
		return "diversified"
	}
}

// Enrich computes the derived metrics for every position of the snapshot.
// It is pure computation over already-validated data: an empty snapshot or a
// zero total yields zero weights rather than an error.
func Enrich(s *Snapshot) []EnrichedPosition {
	if s == nil || len(s.Positions) == 0 {
		return nil
	}

	total := s.TotalValue.InexactFloat64()
	enriched := make([]EnrichedPosition, 0, len(s.Positions))
	weights := make([]float64, 0, len(s.Positions))
	for _, p := range s.Positions {
		e := EnrichedPosition{Position: p, EquityChange: p.MarketValue.Sub(p.CostBasis)}
		if total > 0 {
			e.Weight = p.MarketValue.InexactFloat64() / total
		}
		if !p.CostBasis.IsZero() {
			r := p.MarketValue.Sub(p.CostBasis).Div(p.CostBasis).InexactFloat64()
			e.Return = &r
		}
		enriched = append(enriched, e)
		weights = append(weights, e.Weight)
	}

	if total > 0 {
		// invariant: weights of a full snapshot sum to 1
		if sum, err := stats.Sum(weights); err == nil && math.Abs(sum-1) > weightTolerance {
			log.Printf("warning: weights sum to %v, holdings may not match the account total", sum)
		}
	}
	return enriched
}

// Diversify computes the diversification score of the snapshot.
// A snapshot with no positions or a zero total has no meaningful
// concentration, which is reported as the zero "no data" score.
func Diversify(s *Snapshot) Score {
	if s == nil || len(s.Positions) == 0 || !s.TotalValue.IsPositive() {
		return Score{NoData: true}
	}

	total := s.TotalValue.InexactFloat64()
	squares := make([]float64, 0, len(s.Positions))
	for _, p := range s.Positions {
		w := p.MarketValue.InexactFloat64() / total
		squares = append(squares, w*w)
	}
	hhi, err := stats.Sum(squares)
	if err != nil {
		return Score{NoData: true}
	}

	return Score{Value: clamp((1-hhi)*100, 0, 100), HHI: hhi}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
