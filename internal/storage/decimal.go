package storage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money columns are stored as TEXT holding decimal strings so that balance
// arithmetic stays exact. Sums over them are computed in Go; dataset sizes
// are small by design.

func parseDecimal(s, column string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s value %q: %w", column, s, err)
	}
	return d, nil
}
