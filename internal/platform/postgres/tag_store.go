package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/store"
)

const tagColumns = `id, name, created_at, updated_at`

// PostgresTagStore implements the store.TagStore interface.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new TagStore backed by db.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

var _ store.TagStore = (*PostgresTagStore)(nil)

func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{db: tx, logger: s.logger}
}

func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tags (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, tag.Name, now, now).Scan(&tag.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate tag name", slog.String("name", tag.Name))
			return mapped
		}
		log.Error("failed to create tag", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create tag: %w", mapped)
	}

	tag.CreatedAt, tag.UpdatedAt = now, now
	log.Info("tag created", slog.Int64("tag_id", tag.ID))
	return nil
}

func (s *PostgresTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.getOne(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)
}

func (s *PostgresTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return s.getOne(ctx, `SELECT `+tagColumns+` FROM tags WHERE name = $1`, name)
}

func (s *PostgresTagStore) getOne(ctx context.Context, query string, arg any) (*domain.Tag, error) {
	tag, err := scanTag(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTagNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get tag",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get tag: %w", MapError(err))
	}
	return tag, nil
}

func (s *PostgresTagStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id IN (` + placeholders(1, len(ids)) + `) ORDER BY id`
	return s.list(ctx, query, args...)
}

func (s *PostgresTagStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM tags WHERE name = $1)`, name)
}

func (s *PostgresTagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.list(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY id`)
}

func (s *PostgresTagStore) Search(ctx context.Context, keyword string) ([]*domain.Tag, error) {
	return s.list(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE LOWER(name) LIKE $1 ESCAPE '\' ORDER BY id`,
		likePattern(keyword))
}

func (s *PostgresTagStore) list(ctx context.Context, query string, args ...any) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tags",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tags: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	out := []*domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

func (s *PostgresTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE tags SET name = $1, updated_at = $2 WHERE id = $3`,
		tag.Name, now, tag.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			return mapped
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update tag",
			slog.Int64("tag_id", tag.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update tag: %w", mapped)
	}
	if err := CheckRowsAffected(result, store.ErrTagNotFound); err != nil {
		return err
	}
	tag.UpdatedAt = now
	return nil
}

// Delete removes the tag; post_tags rows cascade.
func (s *PostgresTagStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete tag",
			slog.Int64("tag_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete tag: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTagNotFound)
}

func scanTag(row rowScanner) (*domain.Tag, error) {
	var tag domain.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}
