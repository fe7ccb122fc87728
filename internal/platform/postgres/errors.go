package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/quill-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// uniqueErrors maps a PostgreSQL constraint name, or the "table.column"
// pair SQLite reports, to the specific duplicate error for that column.
var uniqueErrors = map[string]error{
	"users_username_key":  store.ErrUsernameExists,
	"users.username":      store.ErrUsernameExists,
	"users_email_key":     store.ErrEmailExists,
	"users.email":         store.ErrEmailExists,
	"categories_name_key": store.ErrCategoryNameExists,
	"categories.name":     store.ErrCategoryNameExists,
	"tags_name_key":       store.ErrTagNameExists,
	"tags.name":           store.ErrTagNameExists,
	"posts_slug_key":      store.ErrSlugExists,
	"posts.slug":          store.ErrSlugExists,
}

// MapError maps a database error to the matching store error, wrapping the
// original so that callers can still log it.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if IsUniqueViolation(err) {
		if specific, ok := uniqueErrors[uniqueTarget(err)]; ok {
			return fmt.Errorf("%w: %v", specific, err)
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrReferenced, err)
	}
	if IsCheckConstraintViolation(err) || IsNotNullViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return err
}

// uniqueTarget names the violated constraint: the constraint name on
// PostgreSQL, "table.column" on SQLite.
func uniqueTarget(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		// "UNIQUE constraint failed: users.email"
		msg := liteErr.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			return strings.TrimSpace(strings.SplitN(msg[i+2:], ",", 2)[0])
		}
	}
	return ""
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func sqliteCode(err error) sqlite3.ErrNoExtended {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode
	}
	return 0
}

// IsUniqueViolation checks if the given error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	c := sqliteCode(err)
	return pgCode(err) == uniqueViolationCode ||
		c == sqlite3.ErrConstraintUnique || c == sqlite3.ErrConstraintPrimaryKey
}

// IsForeignKeyViolation checks if the given error is a foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == foreignKeyViolationCode ||
		sqliteCode(err) == sqlite3.ErrConstraintForeignKey
}

// IsCheckConstraintViolation checks if the given error is a check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	return pgCode(err) == checkViolationCode ||
		sqliteCode(err) == sqlite3.ErrConstraintCheck
}

// IsNotNullViolation checks if the given error is a not null constraint violation.
func IsNotNullViolation(err error) bool {
	return pgCode(err) == notNullViolationCode ||
		sqliteCode(err) == sqlite3.ErrConstraintNotNull
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// placeholders renders "$start, $start+1, ..." for n values.
func placeholders(start, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", start+i)
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for
// "LIKE ... ESCAPE '\'". Wildcards in keyword match literally.
func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}
