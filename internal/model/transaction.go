package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a single component purchase by a student.
//
// UnitPrice is a snapshot taken at purchase time; it does not track later
// component price edits. A negative Quantity represents a return. A
// transaction is immutable once created: the only state change is deletion.
type Transaction struct {
	Date        time.Time
	Notes       string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalCost   decimal.Decimal
	ID          int64
	StudentID   int64
	ComponentID int64

	// Populated by joined reads for display and reporting.
	ComponentCode        string
	ComponentDescription string
	ComponentCategory    Category
	StudentName          string
	StudentNumber        string
}
