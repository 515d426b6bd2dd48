package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/ledger"
	"github.com/labtools/labledger/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// defaultDBPath returns the configured database path, falling back to the
// standard config directory.
func defaultDBPath() (string, error) {
	dbPath := viper.GetString("database.path")
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "labledger", "labledger.db"), nil
}

// openStore opens the configured database and brings its schema up to date.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to run database migrations", err)
	}
	return store, nil
}

// ledgers bundles the business-layer views over one store.
type ledgers struct {
	inventory *ledger.Inventory
	students  *ledger.Students
	purchases *ledger.Purchases
}

func newLedgers(store *storage.SQLiteStore) ledgers {
	return ledgers{
		inventory: ledger.NewInventory(store),
		students:  ledger.NewStudents(store),
		purchases: ledger.NewPurchases(store),
	}
}

// parseID parses a positive row id from a command argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseInt parses a signed integer from a command argument.
func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

// parseMoney parses a decimal amount from a flag value.
func parseMoney(value, flag string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q: %w", flag, value, err)
	}
	return d, nil
}
