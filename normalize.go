package hoodviz

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalize maps raw brokerage records into a Snapshot using the default
// precision table. See PrecisionTable.Normalize.
func Normalize(raws []RawPosition, total decimal.Decimal, at time.Time) (*Snapshot, []error, error) {
	return DefaultPrecision.Normalize(raws, total, at)
}

// Normalize maps each raw record to a Position, applying the table's rounding
// rules, dropping closed (zero quantity) positions and skipping malformed
// records. Skipped records are returned so the caller can report them; the
// run only fails with ErrDataUnavailable when no record survives.
//
// Positions are emitted in descending market value order, ties broken by
// symbol, so every chart renders in the same meaningful order without
// re-sorting.
func (pt PrecisionTable) Normalize(raws []RawPosition, total decimal.Decimal, at time.Time) (*Snapshot, []error, error) {
	if len(raws) == 0 {
		return nil, nil, ErrDataUnavailable
	}

	var skipped []error
	positions := make([]Position, 0, len(raws))
	for _, raw := range raws {
		p, err := pt.normalizeOne(raw)
		if err != nil {
			log.Printf("warning: skipping %v", err)
			skipped = append(skipped, err)
			continue
		}
		if p.Quantity.IsZero() {
			// closed position, not a holding anymore
			continue
		}
		positions = append(positions, p)
	}

	if len(positions) == 0 && len(skipped) > 0 {
		return nil, skipped, ErrDataUnavailable
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if c := positions[i].MarketValue.Cmp(positions[j].MarketValue); c != 0 {
			return c > 0
		}
		return positions[i].Symbol < positions[j].Symbol
	})

	return &Snapshot{
		Time:       at,
		TotalValue: total.Round(2),
		Positions:  positions,
	}, skipped, nil
}

func (pt PrecisionTable) normalizeOne(raw RawPosition) (Position, error) {
	if strings.TrimSpace(raw.Symbol) == "" {
		return Position{}, &MalformedRecordError{Field: "symbol"}
	}

	quantity, err := decimal.NewFromString(raw.Quantity)
	if err != nil {
		return Position{}, &MalformedRecordError{Symbol: raw.Symbol, Field: "quantity", Value: raw.Quantity}
	}
	price, err := decimal.NewFromString(raw.Price)
	if err != nil {
		return Position{}, &MalformedRecordError{Symbol: raw.Symbol, Field: "price", Value: raw.Price}
	}

	// The average cost is optional: Robinhood omits it for transferred or
	// rewarded shares. A missing cost only disables the return metric.
	cost := decimal.Zero
	if strings.TrimSpace(raw.AverageCost) != "" {
		cost, err = decimal.NewFromString(raw.AverageCost)
		if err != nil {
			return Position{}, &MalformedRecordError{Symbol: raw.Symbol, Field: "average cost", Value: raw.AverageCost}
		}
	}

	t := assetType(raw)
	places := pt.Places(t)
	quantity = quantity.Round(places)
	price = price.Round(places)
	return Position{
		Symbol:      raw.Symbol,
		Name:        raw.Name,
		Type:        t,
		Quantity:    quantity,
		CostBasis:   cost.Mul(quantity).Round(places),
		Price:       price,
		MarketValue: quantity.Mul(price).Round(places),
	}, nil
}

// assetType classifies a record by the collection it came from and the
// brokerage's instrument type flag. ADRs trade like common stock and are
// charted as such.
func assetType(raw RawPosition) AssetType {
	if raw.FromCrypto {
		return Crypto
	}
	if strings.EqualFold(raw.TypeFlag, "etp") {
		return ETP
	}
	return Stock
}
