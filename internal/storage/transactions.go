package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/model"
)

// CreateTransaction inserts a purchase record and returns its id. The total
// cost is stored exactly as supplied; callers snapshot quantity × unit price
// before the insert.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return createTransaction(ctx, s.db, txn)
}

// CreateTransaction inserts a purchase record within the unit of work.
func (t *Tx) CreateTransaction(ctx context.Context, txn *model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return createTransaction(ctx, t.tx, txn)
}

func createTransaction(ctx context.Context, q execer, txn *model.Transaction) (int64, error) {
	if txn == nil {
		return 0, fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if err := validateID(txn.StudentID, "studentID"); err != nil {
		return 0, err
	}
	if err := validateID(txn.ComponentID, "componentID"); err != nil {
		return 0, err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO student_transactions (student_id, component_id, quantity, unit_price, total_cost, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.StudentID, txn.ComponentID, txn.Quantity.String(), txn.UnitPrice.String(), txn.TotalCost.String(), txn.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction id: %w", err)
	}

	slog.Debug("created transaction", "id", id, "student", txn.StudentID, "component", txn.ComponentID)
	return id, nil
}

// GetTransactionByID returns a transaction by id.
func (s *SQLiteStore) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return getTransactionByID(ctx, s.db, id)
}

// GetTransactionByID returns a transaction by id within the unit of work.
func (t *Tx) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return getTransactionByID(ctx, t.tx, id)
}

func getTransactionByID(ctx context.Context, q execer, id int64) (*model.Transaction, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, student_id, component_id, quantity, unit_price, total_cost, transaction_date, notes
		FROM student_transactions
		WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// DeleteTransaction removes a transaction row within the unit of work.
func (t *Tx) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM student_transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// ListStudentTransactions returns all of a student's transactions, newest
// first, with the component identifier, description and persisted category
// joined in for display and reporting.
func (s *SQLiteStore) ListStudentTransactions(ctx context.Context, studentID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(studentID, "studentID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT st.id, st.student_id, st.component_id, st.quantity, st.unit_price, st.total_cost,
		       st.transaction_date, st.notes, c.identifier, c.description, c.category
		FROM student_transactions st
		JOIN components c ON st.component_id = c.id
		WHERE st.student_id = ?
		ORDER BY st.transaction_date DESC, st.id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query student transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			txn         model.Transaction
			quantity    string
			unitPrice   string
			totalCost   string
			notes       sql.NullString
			description sql.NullString
			category    sql.NullString
		)
		if err := rows.Scan(&txn.ID, &txn.StudentID, &txn.ComponentID, &quantity, &unitPrice, &totalCost,
			&txn.Date, &notes, &txn.ComponentCode, &description, &category); err != nil {
			return nil, fmt.Errorf("failed to scan student transaction: %w", err)
		}
		txn.Notes = notes.String
		txn.ComponentDescription = description.String
		txn.ComponentCategory = model.Category(category.String)
		if err := parseTransactionAmounts(&txn, quantity, unitPrice, totalCost); err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student transactions: %w", err)
	}

	slog.Debug("retrieved student transactions", "student", studentID, "count", len(transactions))
	return transactions, nil
}

// ListTransactions returns all transactions with student and component
// details, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT st.id, st.student_id, st.component_id, st.quantity, st.unit_price, st.total_cost,
		       st.transaction_date, st.notes, s.name, s.number, c.identifier, c.description, c.category
		FROM student_transactions st
		JOIN students s ON st.student_id = s.id
		JOIN components c ON st.component_id = c.id
		ORDER BY st.transaction_date DESC, st.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			txn         model.Transaction
			quantity    string
			unitPrice   string
			totalCost   string
			notes       sql.NullString
			number      sql.NullString
			description sql.NullString
			category    sql.NullString
		)
		if err := rows.Scan(&txn.ID, &txn.StudentID, &txn.ComponentID, &quantity, &unitPrice, &totalCost,
			&txn.Date, &notes, &txn.StudentName, &number, &txn.ComponentCode, &description, &category); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Notes = notes.String
		txn.StudentNumber = number.String
		txn.ComponentDescription = description.String
		txn.ComponentCategory = model.Category(category.String)
		if err := parseTransactionAmounts(&txn, quantity, unitPrice, totalCost); err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// CountStudentTransactions returns the number of transactions recorded for a
// student.
func (s *SQLiteStore) CountStudentTransactions(ctx context.Context, studentID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(studentID, "studentID"); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM student_transactions WHERE student_id = ?`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count student transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn       model.Transaction
		quantity  string
		unitPrice string
		totalCost string
		notes     sql.NullString
	)
	if err := row.Scan(&txn.ID, &txn.StudentID, &txn.ComponentID, &quantity, &unitPrice, &totalCost, &txn.Date, &notes); err != nil {
		return nil, err
	}
	txn.Notes = notes.String
	if err := parseTransactionAmounts(&txn, quantity, unitPrice, totalCost); err != nil {
		return nil, err
	}
	return &txn, nil
}

func parseTransactionAmounts(txn *model.Transaction, quantity, unitPrice, totalCost string) error {
	var err error
	if txn.Quantity, err = parseDecimal(quantity, "quantity"); err != nil {
		return err
	}
	if txn.UnitPrice, err = parseDecimal(unitPrice, "unit_price"); err != nil {
		return err
	}
	if txn.TotalCost, err = parseDecimal(totalCost, "total_cost"); err != nil {
		return err
	}
	return nil
}
