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

const commentColumns = `id, content, post_id, author_id, created_at, updated_at`

// PostgresCommentStore implements the store.CommentStore interface.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new CommentStore backed by db.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

func (s *PostgresCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}

// Create implements store.CommentStore.Create. A missing post or author
// surfaces as store.ErrReferenced.
func (s *PostgresCommentStore) Create(ctx context.Context, c *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (content, post_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.Content, c.PostID, c.AuthorID, now, now).Scan(&c.ID)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("comment references missing row",
				slog.Int64("post_id", c.PostID),
				slog.Int64("author_id", c.AuthorID))
			return mapped
		}
		log.Error("failed to create comment", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create comment: %w", mapped)
	}

	c.CreatedAt, c.UpdatedAt = now, now
	log.Info("comment created",
		slog.Int64("comment_id", c.ID),
		slog.Int64("post_id", c.PostID))
	return nil
}

func (s *PostgresCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get comment",
			slog.Int64("comment_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get comment: %w", MapError(err))
	}
	return c, nil
}

func (s *PostgresCommentStore) List(ctx context.Context) ([]*domain.Comment, error) {
	return s.list(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY id`)
}

func (s *PostgresCommentStore) ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	return s.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY id`, postID)
}

func (s *PostgresCommentStore) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Comment, error) {
	return s.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE author_id = $1 ORDER BY id`, authorID)
}

func (s *PostgresCommentStore) list(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list comments",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list comments: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	out := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCommentStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete comment",
			slog.Int64("comment_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete comment: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrCommentNotFound)
}

// DeleteByPostAuthor implements store.CommentStore.DeleteByPostAuthor
func (s *PostgresCommentStore) DeleteByPostAuthor(ctx context.Context, authorID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM comments
		WHERE post_id IN (SELECT id FROM posts WHERE author_id = $1)
	`, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments on posts of user %d: %w", authorID, MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("removed comments on user's posts",
		slog.Int64("author_id", authorID),
		slog.Int64("count", n))
	return n, nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
