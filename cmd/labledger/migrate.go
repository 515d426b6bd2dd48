package main

import (
	"fmt"
	"log/slog"

	"github.com/labtools/labledger/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on open; this command exists to prepare a
database ahead of time or to verify one migrates cleanly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath, err := defaultDBPath()
			if err != nil {
				return err
			}

			slog.Info("Running database migrations", "database", dbPath)

			store, err := storage.NewSQLiteStore(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			slog.Info("Database migrations completed", "version", storage.ExpectedSchemaVersion)
			return nil
		},
	}
}
