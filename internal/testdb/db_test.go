package testdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/quill-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTestDBWithTAppliesMigrations(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	for _, table := range []string{"users", "categories", "tags", "posts", "post_tags", "comments"} {
		var name string
		err := db.QueryRowContext(context.Background(),
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enforced")
}

func TestDatabasesAreIsolated(t *testing.T) {
	t.Parallel()

	a := testdb.GetTestDBWithT(t)
	b := testdb.GetTestDBWithT(t)

	_, err := a.Exec(`INSERT INTO tags (name) VALUES ($1)`, "golang")
	require.NoError(t, err)

	var count int
	require.NoError(t, b.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&count))
	assert.Zero(t, count)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.Exec(`INSERT INTO tags (name) VALUES ($1)`, "golang")
		require.NoError(t, err)
	})

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&count))
	assert.Zero(t, count)
}
