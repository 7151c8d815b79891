package hoodviz

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// AssetType classifies a holding. ADRs reported by the brokerage are folded
// into Stock at normalization, so downstream code only ever sees these three.
type AssetType string

const (
	Stock  AssetType = "stock"
	ETP    AssetType = "etp"
	Crypto AssetType = "crypto"
)

// PrecisionTable maps an asset type to the number of decimal places its
// quantity, price and market value are rounded to. Crypto quantities are tiny
// fractions of whole coins, so they keep far more digits than cash-like
// amounts.
type PrecisionTable map[AssetType]int32

// DefaultPrecision rounds monetary asset types to cents and crypto to 20
// places.
var DefaultPrecision = PrecisionTable{
	Stock:  2,
	ETP:    2,
	Crypto: 20,
}

// Places returns the rounding precision for t, falling back to 2 for any
// type absent from the table.
func (pt PrecisionTable) Places(t AssetType) int32 {
	if p, ok := pt[t]; ok {
		return p
	}
	return 2
}

// RawPosition is a holding as returned by the brokerage, before any
// validation. Numeric fields are kept as the API's strings; the normalizer is
// the only place allowed to interpret them. Owned by the robinhood package.
type RawPosition struct {
	Symbol      string
	Name        string
	Quantity    string
	Price       string
	AverageCost string
	TypeFlag    string // brokerage instrument type: "stock", "etp", "adr"
	FromCrypto  bool   // true when the record came from the crypto collection
}

// Position is a single normalized holding. All amounts are exact decimals
// rounded per the PrecisionTable, and MarketValue is always
// Quantity*Price rounded the same way. Immutable once constructed.
type Position struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name,omitempty"`
	Type        AssetType       `json:"asset_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostBasis   decimal.Decimal `json:"cost_basis"`
	Price       decimal.Decimal `json:"current_price"`
	MarketValue decimal.Decimal `json:"market_value"`
}

// FormatUSD renders an amount for display, e.g. "$1,234.56".
// Calculations never use this; it is presentation only.
func FormatUSD(v decimal.Decimal) string {
	cur := money.New(0, money.USD).Currency()
	return cur.Formatter().Format(v.Shift(int32(cur.Fraction)).Round(0).IntPart())
}
