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
	"github.com/shopspring/decimal"
)

const componentColumns = `id, identifier, description, price, quantity, category, created_at, updated_at`

// CreateComponent inserts a new component and returns its id.
//
// Identifier uniqueness is deliberately NOT enforced here: duplicate
// identifiers are resolved heuristically by the CSV importer, and direct
// inserts always succeed.
func (s *SQLiteStore) CreateComponent(ctx context.Context, c *model.Component) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateComponent(c); err != nil {
		return 0, err
	}

	category := c.Category
	if category == "" {
		category = model.CategoryOther
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO components (identifier, description, price, quantity, category, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Identifier, c.Description, c.Price.String(), c.Quantity, string(category), time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert component: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get component id: %w", err)
	}

	slog.Debug("created component", "id", id, "identifier", c.Identifier)
	return id, nil
}

// GetComponentByID returns a component by id.
func (s *SQLiteStore) GetComponentByID(ctx context.Context, id int64) (*model.Component, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+componentColumns+`
		FROM components
		WHERE id = ?`, id)

	c, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: component %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query component: %w", err)
	}
	return c, nil
}

// GetComponentByIdentifier returns the component whose identifier exactly
// matches, or nil when no such component exists. When duplicate identifiers
// are present the lowest id wins.
func (s *SQLiteStore) GetComponentByIdentifier(ctx context.Context, identifier string) (*model.Component, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(identifier, "identifier"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+componentColumns+`
		FROM components
		WHERE identifier = ?
		ORDER BY id
		LIMIT 1`, identifier)

	c, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query component: %w", err)
	}
	return c, nil
}

// ListComponents returns all components ordered by identifier.
func (s *SQLiteStore) ListComponents(ctx context.Context) ([]model.Component, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+componentColumns+`
		FROM components
		ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("failed to query components: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var components []model.Component
	for rows.Next() {
		c, scanErr := scanComponent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan component: %w", scanErr)
		}
		components = append(components, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating components: %w", err)
	}

	slog.Debug("retrieved components", "count", len(components))
	return components, nil
}

// UpdateComponent overwrites identifier, description and price, and
// optionally quantity and category. Nil quantity/category leave the stored
// values untouched.
func (s *SQLiteStore) UpdateComponent(ctx context.Context, id int64, identifier, description string, price decimal.Decimal, quantity *int64, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateString(identifier, "identifier"); err != nil {
		return err
	}

	now := time.Now()
	var err error
	switch {
	case quantity != nil && category != nil:
		_, err = s.db.ExecContext(ctx, `
			UPDATE components
			SET identifier = ?, description = ?, price = ?, quantity = ?, category = ?, updated_at = ?
			WHERE id = ?`,
			identifier, description, price.String(), *quantity, string(*category), now, id)
	case quantity != nil:
		_, err = s.db.ExecContext(ctx, `
			UPDATE components
			SET identifier = ?, description = ?, price = ?, quantity = ?, updated_at = ?
			WHERE id = ?`,
			identifier, description, price.String(), *quantity, now, id)
	case category != nil:
		_, err = s.db.ExecContext(ctx, `
			UPDATE components
			SET identifier = ?, description = ?, price = ?, category = ?, updated_at = ?
			WHERE id = ?`,
			identifier, description, price.String(), string(*category), now, id)
	default:
		_, err = s.db.ExecContext(ctx, `
			UPDATE components
			SET identifier = ?, description = ?, price = ?, updated_at = ?
			WHERE id = ?`,
			identifier, description, price.String(), now, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update component: %w", err)
	}

	slog.Debug("updated component", "id", id, "identifier", identifier)
	return nil
}

// AdjustStock adds delta to the component's quantity. The quantity may go
// negative; oversold stock is tracked, never blocked.
func (s *SQLiteStore) AdjustStock(ctx context.Context, id int64, delta int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	return adjustStock(ctx, s.db, id, delta)
}

// AdjustStock adjusts stock within the unit of work.
func (t *Tx) AdjustStock(ctx context.Context, id int64, delta int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	return adjustStock(ctx, t.tx, id, delta)
}

func adjustStock(ctx context.Context, q execer, id int64, delta int64) error {
	result, err := q.ExecContext(ctx, `
		UPDATE components
		SET quantity = quantity + ?, updated_at = ?
		WHERE id = ?`,
		delta, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check stock adjustment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: component %d", common.ErrNotFound, id)
	}

	slog.Debug("adjusted stock", "id", id, "delta", delta)
	return nil
}

// DeleteComponent removes the component record. It never cascades: any
// transactions referencing the component are left in place.
func (s *SQLiteStore) DeleteComponent(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete component: %w", err)
	}

	slog.Debug("deleted component", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (*model.Component, error) {
	var (
		c           model.Component
		description sql.NullString
		price       string
		category    string
	)
	if err := row.Scan(&c.ID, &c.Identifier, &description, &price, &c.Quantity, &category, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Description = description.String
	c.Category = model.Category(category)

	var err error
	if c.Price, err = parseDecimal(price, "price"); err != nil {
		return nil, err
	}
	return &c, nil
}
