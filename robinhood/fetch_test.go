package robinhood

import (
	"errors"
	"testing"

	"github.com/hoodviz/hoodviz"
)

func TestParseTotalEquity(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{
			name:    "amount as string",
			payload: `{"account_buying_power":{"amount":"12.00"},"total_equity":{"amount":"10202.90","currency":"USD"}}`,
			want:    "10202.9",
		},
		{
			name:    "amount as number",
			payload: `{"total_equity":{"amount":10202.9}}`,
			want:    "10202.9",
		},
		{
			name:    "missing total equity",
			payload: `{"portfolio_equity":{"amount":"1.00"}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			payload: `<html>maintenance</html>`,
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTotalEquity([]byte(tc.payload))
			if tc.wantErr {
				if !errors.Is(err, hoodviz.ErrDataUnavailable) {
					t.Fatalf("parseTotalEquity() error = %v, want ErrDataUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTotalEquity() error = %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("parseTotalEquity() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParsePositionsPage(t *testing.T) {
	payload := `{
	 "next": "https://api.robinhood.com/positions/?cursor=abc",
	 "results": [
	  {"instrument": "https://api.robinhood.com/instruments/abc/", "quantity": "10.00000000", "average_buy_price": "8.0000"},
	  {"instrument": "https://api.robinhood.com/instruments/def/", "quantity": "5.00000000", "average_buy_price": "25.0000"}
	 ]}`

	positions, next, err := parsePositionsPage([]byte(payload))
	if err != nil {
		t.Fatalf("parsePositionsPage() error = %v", err)
	}
	if next != "https://api.robinhood.com/positions/?cursor=abc" {
		t.Errorf("next = %q, want the cursor URL", next)
	}
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	if positions[0].Quantity != "10.00000000" || positions[0].AverageBuyPrice != "8.0000" {
		t.Errorf("positions[0] = %+v, want raw strings preserved", positions[0])
	}
}

func TestParseInstrumentAndQuote(t *testing.T) {
	inst, err := parseInstrument([]byte(`{"symbol":"VOO","simple_name":"Vanguard S&P 500 ETF","type":"etp"}`))
	if err != nil {
		t.Fatalf("parseInstrument() error = %v", err)
	}
	if inst.Symbol != "VOO" || inst.Type != "etp" {
		t.Errorf("parseInstrument() = %+v", inst)
	}

	price, err := parseQuote([]byte(`{"symbol":"VOO","last_trade_price":"400.990000"}`))
	if err != nil {
		t.Fatalf("parseQuote() error = %v", err)
	}
	if price != "400.990000" {
		t.Errorf("parseQuote() = %q, want raw string preserved", price)
	}
}

func TestParseCryptoHoldings(t *testing.T) {
	payload := `{"results":[{
	  "quantity_available": "0.500000000000000000",
	  "currency": {"code": "BTC", "name": "Bitcoin"},
	  "cost_bases": [{"direct_cost_basis": "10000.00", "direct_quantity": "0.50"}]
	}]}`

	holdings, err := parseCryptoHoldings([]byte(payload))
	if err != nil {
		t.Fatalf("parseCryptoHoldings() error = %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	h := holdings[0]
	if h.Currency.Code != "BTC" || h.Quantity != "0.500000000000000000" {
		t.Errorf("holding = %+v", h)
	}
	if got := h.averageCost(); got != "20000" {
		t.Errorf("averageCost() = %q, want 20000", got)
	}
}

func TestCryptoAverageCost_Degraded(t *testing.T) {
	tests := []struct {
		name    string
		holding jcrypto
	}{
		{"no cost bases", jcrypto{}},
		{"zero direct quantity", jcrypto{CostBases: []struct {
			DirectCostBasis string `json:"direct_cost_basis"`
			DirectQuantity  string `json:"direct_quantity"`
		}{{DirectCostBasis: "10.00", DirectQuantity: "0"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.holding.averageCost(); got != "" {
				t.Errorf("averageCost() = %q, want empty", got)
			}
		})
	}
}

func TestParseCryptoQuote(t *testing.T) {
	price, err := parseCryptoQuote([]byte(`{"symbol":"BTCUSD","mark_price":"60123.450000"}`))
	if err != nil {
		t.Fatalf("parseCryptoQuote() error = %v", err)
	}
	if price != "60123.450000" {
		t.Errorf("parseCryptoQuote() = %q", price)
	}
}
