package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a migrated on-disk store in a temp directory.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// seedComponent inserts a component and returns its id.
func seedComponent(t *testing.T, store *SQLiteStore, identifier, description, price string, quantity int64) int64 {
	t.Helper()
	id, err := store.CreateComponent(context.Background(), &model.Component{
		Identifier:  identifier,
		Description: description,
		Price:       mustDecimal(t, price),
		Quantity:    quantity,
	})
	require.NoError(t, err)
	return id
}

// seedStudent inserts a student and returns its id.
func seedStudent(t *testing.T, store *SQLiteStore, name, number, initialBalance string) int64 {
	t.Helper()
	initial := mustDecimal(t, initialBalance)
	id, err := store.CreateStudent(context.Background(), &model.Student{
		Name:           name,
		Number:         number,
		Email:          number + "@example.com",
		Balance:        initial,
		InitialBalance: initial,
	})
	require.NoError(t, err)
	return id
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	require.Error(t, err)
}

func TestBeginTx_RollbackDiscardsWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	componentID := seedComponent(t, store, "R1", "resistor", "0.50", 100)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.AdjustStock(ctx, componentID, -10))
	require.NoError(t, tx.Rollback())

	c, err := store.GetComponentByID(ctx, componentID)
	require.NoError(t, err)
	require.Equal(t, int64(100), c.Quantity)
}

func TestBeginTx_CommitAppliesWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	componentID := seedComponent(t, store, "R1", "resistor", "0.50", 100)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.AdjustStock(ctx, componentID, -10))
	require.NoError(t, tx.Commit())

	c, err := store.GetComponentByID(ctx, componentID)
	require.NoError(t, err)
	require.Equal(t, int64(90), c.Quantity)
}
