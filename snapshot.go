package hoodviz

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is an immutable, timestamped capture of the whole portfolio.
// It is created once per run, either fresh from the brokerage or decoded from
// the cache, and shared read-only by the metrics engine and the renderers.
type Snapshot struct {
	Time       time.Time       `json:"timestamp"`
	TotalValue decimal.Decimal `json:"total_value"`
	Positions  []Position      `json:"positions"`
}

// EncodeSnapshot writes s as JSON. Decimal fields are serialized as exact
// strings so that a decode returns field-for-field identical values,
// including the crypto 20-digit amounts.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot previously written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	return &s, nil
}
