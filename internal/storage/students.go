package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/model"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const studentColumns = `id, name, number, email, balance, initial_balance, phone, created_at, updated_at`

// CreateStudent inserts a new student and returns its id. Student number and
// email are UNIQUE at the schema level; violations surface as
// common.ErrDuplicateEntry.
func (s *SQLiteStore) CreateStudent(ctx context.Context, st *model.Student) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateStudent(st); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO students (name, number, email, phone, balance, initial_balance, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.Name, st.Number, st.Email, st.Phone, st.Balance.String(), st.InitialBalance.String(), time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: student number or email", common.ErrDuplicateEntry)
		}
		return 0, fmt.Errorf("failed to insert student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get student id: %w", err)
	}

	slog.Debug("created student", "id", id, "number", st.Number)
	return id, nil
}

// GetStudentByID returns a student by id.
func (s *SQLiteStore) GetStudentByID(ctx context.Context, id int64) (*model.Student, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = ?`, id)

	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: student %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query student: %w", err)
	}
	return st, nil
}

// GetStudentByNumber returns the student with the given student number, or
// nil when no such student exists.
func (s *SQLiteStore) GetStudentByNumber(ctx context.Context, number string) (*model.Student, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(number, "number"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE number = ?`, number)

	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query student: %w", err)
	}
	return st, nil
}

// ListStudents returns all students ordered by name.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]model.Student, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+studentColumns+`
		FROM students
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var students []model.Student
	for rows.Next() {
		st, scanErr := scanStudent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan student: %w", scanErr)
		}
		students = append(students, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	slog.Debug("retrieved students", "count", len(students))
	return students, nil
}

// UpdateStudent overwrites the student's fields. Balance and initial balance
// are persisted as given, distinctly; the store never recomputes one from the
// other. A nil initialBalance leaves the stored initial balance untouched.
func (s *SQLiteStore) UpdateStudent(ctx context.Context, id int64, name, number, email, phone string, balance decimal.Decimal, initialBalance *decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if err := validateString(number, "number"); err != nil {
		return err
	}

	now := time.Now()
	var err error
	if initialBalance != nil {
		_, err = s.db.ExecContext(ctx, `
			UPDATE students
			SET name = ?, number = ?, email = ?, phone = ?, balance = ?, initial_balance = ?, updated_at = ?
			WHERE id = ?`,
			name, number, email, phone, balance.String(), initialBalance.String(), now, id)
	} else {
		_, err = s.db.ExecContext(ctx, `
			UPDATE students
			SET name = ?, number = ?, email = ?, phone = ?, balance = ?, updated_at = ?
			WHERE id = ?`,
			name, number, email, phone, balance.String(), now, id)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: student number or email", common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	slog.Debug("updated student", "id", id, "number", number)
	return nil
}

// DeleteStudent removes a student. It always cascades: the student's
// transactions are deleted first, then the student record, in one database
// transaction.
func (s *SQLiteStore) DeleteStudent(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM student_transactions WHERE student_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete student transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit student deletion: %w", err)
	}

	slog.Debug("deleted student", "id", id)
	return nil
}

// AdjustStudentBalance adds delta to the student's legacy balance field
// within the unit of work. The derived final balance never reads this field;
// it exists for parity with the historical schema.
func (t *Tx) AdjustStudentBalance(ctx context.Context, id int64, delta decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	var current string
	err := t.tx.QueryRowContext(ctx, `SELECT balance FROM students WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: student %d", common.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to query student balance: %w", err)
	}

	balance, err := parseDecimal(current, "balance")
	if err != nil {
		return err
	}

	_, err = t.tx.ExecContext(ctx, `
		UPDATE students
		SET balance = ?, updated_at = ?
		WHERE id = ?`,
		balance.Add(delta).String(), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update student balance: %w", err)
	}
	return nil
}

// SumTransactionTotals returns the exact sum of total_cost over all of the
// student's transactions. No transactions sums to zero.
func (s *SQLiteStore) SumTransactionTotals(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}
	if err := validateID(studentID, "studentID"); err != nil {
		return decimal.Zero, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT total_cost
		FROM student_transactions
		WHERE student_id = ?`, studentID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query transaction totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if scanErr := rows.Scan(&raw); scanErr != nil {
			return decimal.Zero, fmt.Errorf("failed to scan transaction total: %w", scanErr)
		}
		cost, parseErr := parseDecimal(raw, "total_cost")
		if parseErr != nil {
			return decimal.Zero, parseErr
		}
		total = total.Add(cost)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating transaction totals: %w", err)
	}

	return total, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func scanStudent(row rowScanner) (*model.Student, error) {
	var (
		st             model.Student
		number         sql.NullString
		email          sql.NullString
		phone          sql.NullString
		balance        string
		initialBalance string
	)
	if err := row.Scan(&st.ID, &st.Name, &number, &email, &balance, &initialBalance, &phone, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}

	st.Number = number.String
	st.Email = email.String
	st.Phone = phone.String

	var err error
	if st.Balance, err = parseDecimal(balance, "balance"); err != nil {
		return nil, err
	}
	if st.InitialBalance, err = parseDecimal(initialBalance, "initial_balance"); err != nil {
		return nil, err
	}
	return &st, nil
}
