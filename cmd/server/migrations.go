package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/remind-api/db"
	"github.com/pressly/goose/v3"
)

// runMigrations applies any pending schema migrations embedded in the binary.
func runMigrations(conn *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(db.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied")
	return nil
}
