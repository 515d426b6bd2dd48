package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// Purchases is the transaction engine: it creates purchase records and
// reverses them. A transaction's existence is the sole source of truth for
// how much stock its component consumed and how much the student's balance
// decreased; there is no separate adjustment ledger.
type Purchases struct {
	store PurchaseStore
}

// NewPurchases creates a transaction engine over the given store.
func NewPurchases(store PurchaseStore) *Purchases {
	return &Purchases{store: store}
}

// Purchase records a component purchase for a student and returns the
// transaction id. The total cost is quantity × unitPrice; the unit price is
// the caller's snapshot, never re-fetched from the component's current
// price. Stock is decreased by the purchased quantity in the same unit of
// work as the insert, so a failure in either step leaves both unchanged.
// A negative quantity is a return and increases stock.
func (p *Purchases) Purchase(ctx context.Context, studentID, componentID int64, quantity, unitPrice decimal.Decimal, notes string) (int64, error) {
	// Fail fast before any write.
	if _, err := p.store.GetStudentByID(ctx, studentID); err != nil {
		return 0, err
	}
	if _, err := p.store.GetComponentByID(ctx, componentID); err != nil {
		return 0, err
	}

	totalCost := quantity.Mul(unitPrice)

	uow, err := p.store.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = uow.Rollback() }()

	id, err := uow.CreateTransaction(ctx, &model.Transaction{
		StudentID:   studentID,
		ComponentID: componentID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalCost:   totalCost,
		Notes:       notes,
	})
	if err != nil {
		return 0, err
	}

	// Stock counts are whole units; the integer part of the quantity is
	// what leaves the shelf.
	if err := uow.AdjustStock(ctx, componentID, -quantity.IntPart()); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit purchase: %w", err)
	}

	slog.Debug("recorded purchase",
		"transaction", id,
		"student", studentID,
		"component", componentID,
		"total", totalCost.String())
	return id, nil
}

// Reverse deletes a transaction and credits its total cost back to the
// student's legacy balance field. The derived final balance corrects itself
// by virtue of the transaction being gone.
//
// Component stock is deliberately NOT restored: this preserves the observed
// behavior of the system this ledger replaces. Whether reversal should
// restock is an open product decision; change it here, not in callers.
func (p *Purchases) Reverse(ctx context.Context, transactionID int64) error {
	uow, err := p.store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = uow.Rollback() }()

	txn, err := uow.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if err := uow.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	if err := uow.AdjustStudentBalance(ctx, txn.StudentID, txn.TotalCost); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit reversal: %w", err)
	}

	slog.Debug("reversed transaction",
		"transaction", transactionID,
		"student", txn.StudentID,
		"total", txn.TotalCost.String())
	return nil
}

// Transactions returns all of a student's transactions, newest first.
func (p *Purchases) Transactions(ctx context.Context, studentID int64) ([]model.Transaction, error) {
	return p.store.ListStudentTransactions(ctx, studentID)
}

// AllTransactions returns every transaction with student and component
// details, newest first.
func (p *Purchases) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return p.store.ListTransactions(ctx)
}
