// Package report derives the fixed-layout CSV exports from ledger state.
// It only ever reads; nothing here mutates the store.
package report

import (
	"context"

	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// StudentSource is the student-ledger read surface the generator needs.
type StudentSource interface {
	Students(ctx context.Context) ([]model.Student, error)
	Student(ctx context.Context, id int64) (*model.Student, error)
	FinalBalance(ctx context.Context, id int64) (decimal.Decimal, error)
}

// TransactionSource is the transaction read surface the generator needs.
type TransactionSource interface {
	Transactions(ctx context.Context, studentID int64) ([]model.Transaction, error)
}

// Generator produces the three fixed report layouts: per-student detail,
// all-students batch and the final statement.
type Generator struct {
	students  StudentSource
	purchases TransactionSource
}

// NewGenerator creates a report generator over the given read sources.
func NewGenerator(students StudentSource, purchases TransactionSource) *Generator {
	return &Generator{students: students, purchases: purchases}
}

// studentSummary bundles the header-block values shared by the detail and
// batch layouts.
type studentSummary struct {
	name    string
	number  string
	phone   string
	initial decimal.Decimal
	used    decimal.Decimal
	final   decimal.Decimal
}

func (g *Generator) summarize(ctx context.Context, st *model.Student) (studentSummary, error) {
	final, err := g.students.FinalBalance(ctx, st.ID)
	if err != nil {
		return studentSummary{}, err
	}

	return studentSummary{
		name:    st.Name,
		number:  st.Number,
		phone:   st.Phone,
		initial: st.InitialBalance,
		used:    final.Sub(st.InitialBalance).Abs(),
		final:   final,
	}, nil
}
