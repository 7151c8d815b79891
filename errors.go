package hoodviz

import (
	"errors"
	"fmt"
)

// Fatal errors abort the run; the rest are collected and reported at the end.
var (
	// ErrAuthentication reports that the brokerage refused the login or the
	// stored session. The remedy is to run 'hv login' again.
	ErrAuthentication = errors.New("robinhood authentication failed")

	// ErrDataUnavailable reports that there is nothing to visualize: the API
	// returned no holdings, or every record was unusable.
	ErrDataUnavailable = errors.New("no usable portfolio data")

	// ErrCacheRead marks a cache file that exists but cannot be decoded.
	// It is never fatal: a corrupt cache is just a miss.
	ErrCacheRead = errors.New("cache unreadable")
)

// MalformedRecordError describes a single raw record that could not be
// normalized. It is recoverable: the record is skipped and the error reported
// in the end-of-run summary.
type MalformedRecordError struct {
	Symbol string // may be empty when the symbol itself is missing
	Field  string
	Value  string
}

func (e *MalformedRecordError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("malformed record: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed record %s: bad %s %q", e.Symbol, e.Field, e.Value)
}
