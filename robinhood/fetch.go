package robinhood

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/hoodviz/hoodviz"
	"github.com/shopspring/decimal"
)

const (
	positionsURL      = "https://api.robinhood.com/positions/?nonzero=true"
	quotesURL         = "https://api.robinhood.com/quotes/"
	cryptoHoldingsURL = "https://nummus.robinhood.com/holdings/?nonzero=true"
	cryptoQuotesURL   = "https://api.robinhood.com/marketdata/forex/quotes/"
	accountURL        = "https://phoenix.robinhood.com/accounts/unified"
)

// wget retrieves a payload with the session headers attached.
func wget(uri string, header http.Header) ([]byte, error) {
	r, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", uri, err)
	}
	r.Header = header

	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot reach %q: %v", hoodviz.ErrDataUnavailable, uri, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s answered %s", hoodviz.ErrAuthentication, r.URL.Host, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s answered %s", hoodviz.ErrDataUnavailable, r.URL.Host, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("%w: cannot read http body: %v", hoodviz.ErrDataUnavailable, err)
	}
	return buf.Bytes(), nil
}

// Fetch retrieves the three raw collections that make up the portfolio:
// equity/ETP positions, crypto holdings and the account's total equity, and
// merges the first two into one raw record list. It does not validate or
// round anything; the normalizer owns those rules.
func Fetch(headers http.Header) ([]hoodviz.RawPosition, decimal.Decimal, error) {
	total, err := totalEquity(headers)
	if err != nil {
		return nil, decimal.Zero, err
	}

	raws, err := equityPositions(headers)
	if err != nil {
		return nil, decimal.Zero, err
	}

	crypto, err := cryptoPositions(headers)
	if err != nil {
		// The crypto account is optional; many accounts never opened one.
		// The original tool degrades to stocks-only here, and so do we.
		log.Printf("warning: skipping crypto holdings: %v", err)
	}
	raws = append(raws, crypto...)

	if len(raws) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: account has no open positions", hoodviz.ErrDataUnavailable)
	}

	log.Printf("fetched %d raw positions, total equity %s", len(raws), total)
	return raws, total, nil
}

// --- account total ---

// totalEquity extracts the account's total value from the unified account
// payload. The payload is large and mostly irrelevant, so it is probed with a
// jsonpath instead of a dedicated struct.
func totalEquity(headers http.Header) (decimal.Decimal, error) {
	data, err := wget(accountURL, headers)
	if err != nil {
		return decimal.Zero, err
	}
	return parseTotalEquity(data)
}

func parseTotalEquity(data []byte) (decimal.Decimal, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("%w: cannot decode account payload: %v", hoodviz.ErrDataUnavailable, err)
	}

	jval, err := jsonpath.Get("$.total_equity.amount", jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: account payload has no total equity: %v", hoodviz.ErrDataUnavailable, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case string:
		total, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: total equity %q is not a number", hoodviz.ErrDataUnavailable, v)
		}
		return total, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: total equity has unexpected type %T", hoodviz.ErrDataUnavailable, jval)
	}
}

// --- equities and ETPs ---

// jposition is the excerpt of a single record of the positions payload.
type jposition struct {
	Instrument      string `json:"instrument"` // URL of the instrument resource
	Quantity        string `json:"quantity"`
	AverageBuyPrice string `json:"average_buy_price"`
}

// jinstrument describes the security behind a position.
type jinstrument struct {
	Symbol     string `json:"symbol"`
	SimpleName string `json:"simple_name"`
	Name       string `json:"name"`
	Type       string `json:"type"` // "stock", "etp" or "adr"
}

func parsePositionsPage(data []byte) (positions []jposition, next string, err error) {
	var page struct {
		Results []jposition `json:"results"`
		Next    string      `json:"next"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, "", fmt.Errorf("%w: cannot decode positions payload: %v", hoodviz.ErrDataUnavailable, err)
	}
	return page.Results, page.Next, nil
}

func parseInstrument(data []byte) (jinstrument, error) {
	var inst jinstrument
	if err := json.Unmarshal(data, &inst); err != nil {
		return inst, fmt.Errorf("%w: cannot decode instrument payload: %v", hoodviz.ErrDataUnavailable, err)
	}
	return inst, nil
}

func parseQuote(data []byte) (string, error) {
	var quote struct {
		LastTradePrice string `json:"last_trade_price"`
	}
	if err := json.Unmarshal(data, &quote); err != nil {
		return "", fmt.Errorf("%w: cannot decode quote payload: %v", hoodviz.ErrDataUnavailable, err)
	}
	return quote.LastTradePrice, nil
}

func equityPositions(headers http.Header) ([]hoodviz.RawPosition, error) {
	var all []jposition
	for uri := positionsURL; uri != ""; {
		data, err := wget(uri, headers)
		if err != nil {
			return nil, err
		}
		page, next, err := parsePositionsPage(data)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		uri = next
	}

	// instruments are shared between lots, fetch each URL once
	instruments := make(map[string]jinstrument)
	raws := make([]hoodviz.RawPosition, 0, len(all))
	for _, pos := range all {
		inst, ok := instruments[pos.Instrument]
		if !ok {
			data, err := wget(pos.Instrument, headers)
			if err != nil {
				return nil, err
			}
			if inst, err = parseInstrument(data); err != nil {
				return nil, err
			}
			instruments[pos.Instrument] = inst
		}

		raw := hoodviz.RawPosition{
			Symbol:      inst.Symbol,
			Name:        inst.SimpleName,
			Quantity:    pos.Quantity,
			AverageCost: pos.AverageBuyPrice,
			TypeFlag:    inst.Type,
		}
		if raw.Name == "" {
			raw.Name = inst.Name
		}

		if inst.Symbol != "" {
			data, err := wget(quotesURL+inst.Symbol+"/", headers)
			if err != nil {
				return nil, err
			}
			if raw.Price, err = parseQuote(data); err != nil {
				return nil, err
			}
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// --- crypto ---

// jcrypto is the excerpt of a single crypto holding record.
type jcrypto struct {
	Quantity string `json:"quantity_available"`
	Currency struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"currency"`
	CostBases []struct {
		DirectCostBasis string `json:"direct_cost_basis"`
		DirectQuantity  string `json:"direct_quantity"`
	} `json:"cost_bases"`
}

func parseCryptoHoldings(data []byte) ([]jcrypto, error) {
	var page struct {
		Results []jcrypto `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("%w: cannot decode crypto holdings payload: %v", hoodviz.ErrDataUnavailable, err)
	}
	return page.Results, nil
}

func parseCryptoQuote(data []byte) (string, error) {
	var quote struct {
		MarkPrice string `json:"mark_price"`
	}
	if err := json.Unmarshal(data, &quote); err != nil {
		return "", fmt.Errorf("%w: cannot decode crypto quote payload: %v", hoodviz.ErrDataUnavailable, err)
	}
	return quote.MarkPrice, nil
}

// averageCost derives the per-unit cost from the holding's direct cost basis.
// Empty when the payload gives no usable basis; the normalizer treats that as
// "return unknown", not as an error.
func (h jcrypto) averageCost() string {
	if len(h.CostBases) == 0 {
		return ""
	}
	basis, err := decimal.NewFromString(h.CostBases[0].DirectCostBasis)
	if err != nil {
		return ""
	}
	qty, err := decimal.NewFromString(h.CostBases[0].DirectQuantity)
	if err != nil || qty.IsZero() {
		return ""
	}
	return basis.Div(qty).String()
}

func cryptoPositions(headers http.Header) ([]hoodviz.RawPosition, error) {
	data, err := wget(cryptoHoldingsURL, headers)
	if err != nil {
		return nil, err
	}
	holdings, err := parseCryptoHoldings(data)
	if err != nil {
		return nil, err
	}

	raws := make([]hoodviz.RawPosition, 0, len(holdings))
	for _, h := range holdings {
		raw := hoodviz.RawPosition{
			Symbol:      h.Currency.Code,
			Name:        h.Currency.Name,
			Quantity:    h.Quantity,
			AverageCost: h.averageCost(),
			FromCrypto:  true,
		}

		if h.Currency.Code != "" {
			data, err := wget(cryptoQuotesURL+h.Currency.Code+"USD/", headers)
			if err != nil {
				return nil, err
			}
			if raw.Price, err = parseCryptoQuote(data); err != nil {
				return nil, err
			}
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
