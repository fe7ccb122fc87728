package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/store"
)

const postColumns = `p.id, p.title, p.slug, p.content, p.published, p.published_at,
	p.author_id, p.category_id, p.created_at, p.updated_at`

// PostgresPostStore implements the store.PostStore interface. Tag links live
// in post_tags and are loaded alongside the posts.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostStore backed by db.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

var _ store.PostStore = (*PostgresPostStore)(nil)

func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx, logger: s.logger}
}

// Create implements store.PostStore.Create
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, content, published, published_at, author_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		post.Title,
		post.Slug,
		post.Content,
		post.Published,
		nullTime(post.PublishedAt),
		post.AuthorID,
		post.CategoryID,
		now,
		now,
	).Scan(&post.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) || errors.Is(mapped, store.ErrReferenced) {
			log.Warn("post rejected by constraint",
				slog.String("slug", post.Slug),
				slog.String("error", err.Error()))
			return mapped
		}
		log.Error("failed to create post", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create post: %w", mapped)
	}

	post.TagIDs = uniqueIDs(post.TagIDs)
	if err := s.insertTags(ctx, post.ID, post.TagIDs); err != nil {
		return err
	}

	post.CreatedAt, post.UpdatedAt = now, now
	log.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("author_id", post.AuthorID),
		slog.Int("tags", len(post.TagIDs)))
	return nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.getOne(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id)
}

// GetBySlug implements store.PostStore.GetBySlug
func (s *PostgresPostStore) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.getOne(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.slug = $1`, slug)
}

func (s *PostgresPostStore) getOne(ctx context.Context, query string, arg any) (*domain.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get post",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post: %w", MapError(err))
	}
	if err := s.attachTags(ctx, []*domain.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// ExistsBySlug implements store.PostStore.ExistsBySlug
func (s *PostgresPostStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)`, slug)
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	return s.Find(ctx, nil)
}

// Find implements store.PostStore.Find
func (s *PostgresPostStore) Find(ctx context.Context, pred *store.PostPredicate) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args, err := renderPredicate(pred)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + postColumns + ` FROM posts p` + where + ` ORDER BY p.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	// Close before issuing the tag query; a single-connection pool would
	// otherwise deadlock.
	_ = rows.Close()

	if err := s.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	log.Debug("posts found", slog.Int("count", len(posts)))
	return posts, nil
}

// renderPredicate turns pred into a WHERE clause with $N placeholders.
func renderPredicate(pred *store.PostPredicate) (string, []any, error) {
	if pred == nil || len(pred.Clauses) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(pred.Clauses))
	args := make([]any, 0, len(pred.Clauses))
	for _, c := range pred.Clauses {
		n := len(args) + 1
		switch c.Field {
		case store.FieldAuthorID:
			conds = append(conds, fmt.Sprintf("p.author_id = $%d", n))
		case store.FieldCategoryID:
			conds = append(conds, fmt.Sprintf("p.category_id = $%d", n))
		case store.FieldPublished:
			conds = append(conds, fmt.Sprintf("p.published = $%d", n))
		case store.FieldTagID:
			conds = append(conds, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = $%d)", n))
		default:
			return "", nil, fmt.Errorf("unsupported post filter field %q", c.Field)
		}
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// Update implements store.PostStore.Update
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE posts
		SET title = $1, slug = $2, content = $3, published = $4, published_at = $5,
			category_id = $6, updated_at = $7
		WHERE id = $8
	`,
		post.Title,
		post.Slug,
		post.Content,
		post.Published,
		nullTime(post.PublishedAt),
		post.CategoryID,
		now,
		post.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) || errors.Is(mapped, store.ErrReferenced) {
			return mapped
		}
		log.Error("failed to update post",
			slog.Int64("post_id", post.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update post: %w", mapped)
	}
	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.ID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", MapError(err))
	}
	post.TagIDs = uniqueIDs(post.TagIDs)
	if err := s.insertTags(ctx, post.ID, post.TagIDs); err != nil {
		return err
	}

	post.UpdatedAt = now
	log.Info("post updated", slog.Int64("post_id", post.ID))
	return nil
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("post still has comments", slog.Int64("post_id", id))
			return mapped
		}
		log.Error("failed to delete post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post: %w", mapped)
	}
	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		return err
	}
	log.Info("post deleted", slog.Int64("post_id", id))
	return nil
}

func (s *PostgresPostStore) insertTags(ctx context.Context, postID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
			mapped := MapError(err)
			if errors.Is(mapped, store.ErrReferenced) {
				return fmt.Errorf("%w: tag %d", store.ErrTagNotFound, tagID)
			}
			return fmt.Errorf("failed to link tag %d: %w", tagID, mapped)
		}
	}
	return nil
}

// attachTags fills TagIDs for every post with one query.
func (s *PostgresPostStore) attachTags(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Post, len(posts))
	args := make([]any, 0, len(posts))
	for _, p := range posts {
		p.TagIDs = []int64{}
		byID[p.ID] = p
		args = append(args, p.ID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT post_id, tag_id FROM post_tags WHERE post_id IN (`+placeholders(1, len(args))+`) ORDER BY post_id, tag_id`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to load post tags: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var postID, tagID int64
		if err := rows.Scan(&postID, &tagID); err != nil {
			return fmt.Errorf("failed to scan post tag: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.TagIDs = append(p.TagIDs, tagID)
		}
	}
	return rows.Err()
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	var publishedAt sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.Published,
		&publishedAt,
		&p.AuthorID,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		p.PublishedAt = &t
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
