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

const categoryColumns = `id, name, description, created_at, updated_at`

// PostgresCategoryStore implements the store.CategoryStore interface.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new CategoryStore backed by db.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

func (s *PostgresCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Name, c.Description, now, now).Scan(&c.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate category name", slog.String("name", c.Name))
			return mapped
		}
		log.Error("failed to create category", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create category: %w", mapped)
	}

	c.CreatedAt, c.UpdatedAt = now, now
	log.Info("category created", slog.Int64("category_id", c.ID))
	return nil
}

func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

func (s *PostgresCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
}

func (s *PostgresCategoryStore) getOne(ctx context.Context, query string, arg any) (*domain.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get category",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get category: %w", MapError(err))
	}
	return c, nil
}

func (s *PostgresCategoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name)
}

func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	return s.list(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
}

func (s *PostgresCategoryStore) Search(ctx context.Context, keyword string) ([]*domain.Category, error) {
	return s.list(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) LIKE $1 ESCAPE '\' ORDER BY id`,
		likePattern(keyword))
}

func (s *PostgresCategoryStore) list(ctx context.Context, query string, args ...any) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list categories",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	out := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCategoryStore) Update(ctx context.Context, c *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, description = $2, updated_at = $3 WHERE id = $4
	`, c.Name, c.Description, now, c.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			return mapped
		}
		log.Error("failed to update category",
			slog.Int64("category_id", c.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update category: %w", mapped)
	}
	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("category still referenced by posts", slog.Int64("category_id", id))
			return mapped
		}
		log.Error("failed to delete category",
			slog.Int64("category_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete category: %w", mapped)
	}
	return CheckRowsAffected(result, store.ErrCategoryNotFound)
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
