// Package ledger implements the business rules that keep component stock,
// student balances and the transaction log mutually consistent.
package ledger

import (
	"context"

	"github.com/labtools/labledger/internal/model"
	"github.com/labtools/labledger/internal/storage"
	"github.com/shopspring/decimal"
)

// ComponentStore is the persistence surface the inventory ledger needs.
type ComponentStore interface {
	CreateComponent(ctx context.Context, c *model.Component) (int64, error)
	GetComponentByID(ctx context.Context, id int64) (*model.Component, error)
	GetComponentByIdentifier(ctx context.Context, identifier string) (*model.Component, error)
	ListComponents(ctx context.Context) ([]model.Component, error)
	UpdateComponent(ctx context.Context, id int64, identifier, description string, price decimal.Decimal, quantity *int64, category *model.Category) error
	AdjustStock(ctx context.Context, id int64, delta int64) error
	DeleteComponent(ctx context.Context, id int64) error
}

// StudentStore is the persistence surface the student ledger needs.
type StudentStore interface {
	CreateStudent(ctx context.Context, st *model.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*model.Student, error)
	GetStudentByNumber(ctx context.Context, number string) (*model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)
	UpdateStudent(ctx context.Context, id int64, name, number, email, phone string, balance decimal.Decimal, initialBalance *decimal.Decimal) error
	DeleteStudent(ctx context.Context, id int64) error
	SumTransactionTotals(ctx context.Context, studentID int64) (decimal.Decimal, error)
	CountStudentTransactions(ctx context.Context, studentID int64) (int, error)
}

// PurchaseStore is the persistence surface the transaction engine needs.
// BeginTx returns the store's unit of work so the transaction insert and the
// stock adjustment commit or roll back together.
type PurchaseStore interface {
	BeginTx(ctx context.Context) (*storage.Tx, error)
	GetStudentByID(ctx context.Context, id int64) (*model.Student, error)
	GetComponentByID(ctx context.Context, id int64) (*model.Component, error)
	ListStudentTransactions(ctx context.Context, studentID int64) ([]model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
}
