package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // register the sqlite3 driver
	"github.com/phrazzld/quill-api/internal/platform/postgres"
)

// Driver is the database/sql driver used for test databases.
const Driver = "sqlite3"

// DSN returns a data source name for a fresh shared-cache in-memory
// database with foreign keys enforced.
func DSN() string {
	return fmt.Sprintf("file:quill-test-%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
}

// Open opens a new migrated in-memory database. The pool is limited to one
// connection: an in-memory database lives only as long as its connections.
func Open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(Driver, DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(ctx, db, Driver, postgres.MigrateUp, quiet); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// GetTestDBWithT opens a migrated database and closes it when the test ends.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Open(ctx)
	if err != nil {
		t.Fatalf("failed to set up test database: %v", err)
	}
	t.Cleanup(func() { CleanupDB(t, db) })
	return db
}

// CleanupDB closes db, reporting a failure through t.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
