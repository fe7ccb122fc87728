package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/quill-api/internal/domain"
)

// CategoryStore persists categories. Names are unique.
type CategoryStore interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*domain.Category, error)
	// Search returns categories whose name contains keyword, ignoring case.
	Search(ctx context.Context, keyword string) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	// Delete returns ErrReferenced while any post still uses the category.
	Delete(ctx context.Context, id int64) error
	WithTx(tx *sql.Tx) CategoryStore
}

// TagStore persists tags. Names are unique.
type TagStore interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	// GetByIDs returns the tags that exist among ids, ordered by ID.
	// Missing ids are silently skipped; callers compare lengths.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	Search(ctx context.Context, keyword string) ([]*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id int64) error
	WithTx(tx *sql.Tx) TagStore
}

// PostStore persists posts together with their tag links.
type PostStore interface {
	// Create inserts the post and its post_tags rows. Callers should run it
	// inside a transaction so a failed link insert leaves no post behind.
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// List returns every post ordered by ID.
	List(ctx context.Context) ([]*domain.Post, error)
	// Find returns the posts matching pred, ordered by ID. A nil predicate
	// matches every post.
	Find(ctx context.Context, pred *PostPredicate) ([]*domain.Post, error)
	// Update writes the post columns and replaces its tag links.
	Update(ctx context.Context, post *domain.Post) error
	// Delete returns ErrReferenced while comments still point at the post.
	Delete(ctx context.Context, id int64) error
	WithTx(tx *sql.Tx) PostStore
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	List(ctx context.Context) ([]*domain.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	// DeleteByPostAuthor removes every comment on posts written by authorID
	// and returns how many rows went away.
	DeleteByPostAuthor(ctx context.Context, authorID int64) (int64, error)
	WithTx(tx *sql.Tx) CommentStore
}
