package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx driver
	_ "github.com/mattn/go-sqlite3"    // register the sqlite3 driver
	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/redact"
)

// setupAppDatabase opens the configured database, sizes the pool and checks
// the connection.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	dsn := cfg.Database.URL
	if cfg.Database.Driver == "sqlite3" {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen := cfg.Database.MaxOpenConns
	if cfg.Database.Driver == "sqlite3" {
		// SQLite allows a single writer.
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Database.Driver == "sqlite3" {
		if err := checkForeignKeys(pingCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logger.Info("Database connection established",
		"driver", cfg.Database.Driver,
		"url", redact.String(cfg.Database.URL),
		"max_open_conns", maxOpen)
	return db, nil
}

// sqliteDSN turns on foreign key enforcement for every connection the
// sqlite3 driver opens. An explicit _foreign_keys or _fk parameter is kept
// and then rejected by checkForeignKeys if it disables enforcement.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// checkForeignKeys fails unless SQLite enforces foreign keys.
func checkForeignKeys(ctx context.Context, db *sql.DB) error {
	var enabled int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("failed to read sqlite foreign_keys pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign key enforcement is disabled by the database URL")
	}
	return nil
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("Error closing database connection", "error", redact.Error(err))
	}
}
