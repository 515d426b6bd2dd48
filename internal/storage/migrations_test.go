package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))

	// All tables must exist after migration.
	for _, table := range []string{"components", "students", "student_transactions", "settings", "categories", "component_category"} {
		var name string
		err := store.db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
}

func TestMigrate_SetsSchemaVersion(t *testing.T) {
	store := newTestStore(t)

	var version int
	err := store.db.QueryRowContext(context.Background(), `PRAGMA user_version`).Scan(&version)
	require.NoError(t, err)
	require.Equal(t, ExpectedSchemaVersion, version)
}
