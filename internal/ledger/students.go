package ledger

import (
	"context"

	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// Students owns student accounts and derives their final balances.
type Students struct {
	store StudentStore
}

// NewStudents creates a student ledger over the given store.
func NewStudents(store StudentStore) *Students {
	return &Students{store: store}
}

// CreateStudent adds a new student. Name and number are required and are
// validated before any write; duplicate numbers or emails are rejected by
// the store.
//
// The legacy balance field starts out equal to the initial balance, matching
// the historical schema; it plays no part in the derived final balance.
func (sl *Students) CreateStudent(ctx context.Context, name, number, email, phone string, initialBalance decimal.Decimal) (int64, error) {
	if name == "" {
		return 0, ErrMissingName
	}
	if number == "" {
		return 0, ErrMissingNumber
	}

	return sl.store.CreateStudent(ctx, &model.Student{
		Name:           name,
		Number:         number,
		Email:          email,
		Phone:          phone,
		Balance:        initialBalance,
		InitialBalance: initialBalance,
	})
}

// UpdateStudent overwrites the student's fields. Balance and initial balance
// are persisted distinctly as supplied; the final balance is always derived
// at read time, never recomputed here. Nil initialBalance leaves the stored
// value untouched.
func (sl *Students) UpdateStudent(ctx context.Context, id int64, name, number, email, phone string, balance decimal.Decimal, initialBalance *decimal.Decimal) error {
	if name == "" {
		return ErrMissingName
	}
	if number == "" {
		return ErrMissingNumber
	}
	return sl.store.UpdateStudent(ctx, id, name, number, email, phone, balance, initialBalance)
}

// FinalBalance computes the student's money remaining: initial balance minus
// the sum of all their transaction totals. It is derived on every call and
// never cached or stored. A student with no transactions has a final balance
// equal to their initial balance.
func (sl *Students) FinalBalance(ctx context.Context, id int64) (decimal.Decimal, error) {
	student, err := sl.store.GetStudentByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := sl.store.SumTransactionTotals(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	return student.InitialBalance.Sub(total), nil
}

// DeleteStudent removes the student and always cascades: every transaction
// belonging to the student is deleted first, so no orphan transactions
// remain.
func (sl *Students) DeleteStudent(ctx context.Context, id int64) error {
	return sl.store.DeleteStudent(ctx, id)
}

// Student returns a student by id.
func (sl *Students) Student(ctx context.Context, id int64) (*model.Student, error) {
	return sl.store.GetStudentByID(ctx, id)
}

// StudentByNumber returns the student with the given number, or nil when
// none exists.
func (sl *Students) StudentByNumber(ctx context.Context, number string) (*model.Student, error) {
	return sl.store.GetStudentByNumber(ctx, number)
}

// Students returns all students ordered by name.
func (sl *Students) Students(ctx context.Context) ([]model.Student, error) {
	return sl.store.ListStudents(ctx)
}

// TransactionCount returns the number of transactions recorded for the
// student.
func (sl *Students) TransactionCount(ctx context.Context, id int64) (int, error) {
	return sl.store.CountStudentTransactions(ctx, id)
}
