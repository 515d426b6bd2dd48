package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student represents a lab account holder.
//
// InitialBalance is the money deposited. The student's final balance is never
// stored; it is always derived as initial balance minus the sum of their
// transaction totals. Balance is a legacy field kept for schema parity and
// only mutated when a transaction is reversed.
type Student struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Name           string
	Number         string
	Email          string
	Phone          string
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	ID             int64
}
