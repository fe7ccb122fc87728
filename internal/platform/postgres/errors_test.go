package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{
			"named unique constraint",
			&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			store.ErrEmailExists,
		},
		{
			"slug constraint",
			fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "posts_slug_key"}),
			store.ErrSlugExists,
		},
		{
			"unknown unique constraint",
			&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "something_else"},
			store.ErrDuplicate,
		},
		{
			"foreign key",
			&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "comments_post_id_fkey"},
			store.ErrReferenced,
		},
		{"check", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode}, store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	plain := errors.New("connection reset")
	assert.Equal(t, plain, MapError(plain))
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", placeholders(1, 0))
	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$3, $4, $5", placeholders(3, 3))
	assert.Equal(t, "%golang%", likePattern("GoLang"))
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%t\_a%`, likePattern("T_a"))
	assert.Equal(t, `%c:\\go%`, likePattern(`C:\go`))
}
