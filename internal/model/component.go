// Package model defines the core domain types shared across the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Component represents a stocked electronic component.
//
// Quantity is a signed count: negative values mean the component is oversold
// or backordered and are never blocked at the ledger level.
type Component struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Identifier  string
	Description string
	Category    Category
	Price       decimal.Decimal
	ID          int64
	Quantity    int64
}
