package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// PostService manages blog posts and their publication state.
//
// Create and Update resolve every referenced category and tag before
// anything is written, and write the post together with its tag links in a
// single transaction.
type PostService interface {
	// Create stores a post authored by the principal bound to ctx.
	Create(ctx context.Context, req PostCreateRequest) (*PostResponse, error)
	GetByID(ctx context.Context, id int64) (*PostResponse, error)
	GetBySlug(ctx context.Context, slug string) (*PostResponse, error)
	// GetAll lists posts matching every criterion set in filter.
	GetAll(ctx context.Context, filter store.PostFilter) ([]PostResponse, error)
	Update(ctx context.Context, id int64, req PostUpdateRequest) (*PostResponse, error)
	// Delete fails with a conflict while the post still has comments.
	Delete(ctx context.Context, id int64) error
	// Publish is idempotent: publishing a published post keeps its
	// original publication time.
	Publish(ctx context.Context, id int64) (*PostResponse, error)
	Unpublish(ctx context.Context, id int64) (*PostResponse, error)
}

// PostServiceOption configures a PostServiceImpl.
type PostServiceOption func(*PostServiceImpl)

// WithPublishHook registers fn to run each time a post moves from draft to
// published.
func WithPublishHook(fn func()) PostServiceOption {
	return func(s *PostServiceImpl) {
		s.onPublish = fn
	}
}

// WithClock overrides the time source used for publication timestamps.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *PostServiceImpl) {
		s.now = now
	}
}

type PostServiceImpl struct {
	posts      store.PostStore
	users      store.UserStore
	categories store.CategoryStore
	tags       store.TagStore
	tx         store.TxRunner
	logger     *slog.Logger
	now        func() time.Time
	onPublish  func()
}

func NewPostService(
	posts store.PostStore,
	users store.UserStore,
	categories store.CategoryStore,
	tags store.TagStore,
	tx store.TxRunner,
	logger *slog.Logger,
	opts ...PostServiceOption,
) *PostServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PostServiceImpl{
		posts:      posts,
		users:      users,
		categories: categories,
		tags:       tags,
		tx:         tx,
		logger:     logger.With("component", "post_service"),
		now:        time.Now,
		onPublish:  func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ PostService = (*PostServiceImpl)(nil)

// Create implements PostService.Create
func (s *PostServiceImpl) Create(ctx context.Context, req PostCreateRequest) (*PostResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	principal, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return nil, domain.NewBadRequestError("An authenticated user is required to create a post")
	}
	author, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, userLookupError(err, principal.UserID)
	}

	taken, err := s.posts.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, wrapUnexpected("failed to check slug", err)
	}
	if taken {
		return nil, domain.NewConflictError("Slug", req.Slug)
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, categoryLookupError(err, "id", req.CategoryID)
	}
	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		AuthorID:   author.ID,
		CategoryID: category.ID,
		TagIDs:     tagIDs(tags),
	}
	published := req.Published && post.Publish(s.now())

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return txPosts(s.posts, tx).Create(ctx, post)
	})
	if err != nil {
		return nil, s.writeError("create", post, err)
	}
	if published {
		s.onPublish()
	}

	s.logger.Info("post created",
		"post_id", post.ID,
		"author_id", post.AuthorID,
		"published", post.Published)
	resp := ToPostResponse(post, author, category, tags)
	return &resp, nil
}

// GetByID implements PostService.GetByID
func (s *PostServiceImpl) GetByID(ctx context.Context, id int64) (*PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, postLookupError(err, "id", id)
	}
	return s.single(ctx, post)
}

// GetBySlug implements PostService.GetBySlug
func (s *PostServiceImpl) GetBySlug(ctx context.Context, slug string) (*PostResponse, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, postLookupError(err, "slug", slug)
	}
	return s.single(ctx, post)
}

// GetAll implements PostService.GetAll
func (s *PostServiceImpl) GetAll(ctx context.Context, filter store.PostFilter) ([]PostResponse, error) {
	var (
		posts []*domain.Post
		err   error
	)
	if pred := store.BuildPostFilter(filter); pred != nil {
		posts, err = s.posts.Find(ctx, pred)
	} else {
		posts, err = s.posts.List(ctx)
	}
	if err != nil {
		return nil, wrapUnexpected("failed to list posts", err)
	}
	return s.assemble(ctx, posts)
}

// Update implements PostService.Update
func (s *PostServiceImpl) Update(ctx context.Context, id int64, req PostUpdateRequest) (*PostResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, postLookupError(err, "id", id)
	}

	if req.Slug != nil && *req.Slug != post.Slug {
		taken, err := s.posts.ExistsBySlug(ctx, *req.Slug)
		if err != nil {
			return nil, wrapUnexpected("failed to check slug", err)
		}
		if taken {
			return nil, domain.NewConflictError("Slug", *req.Slug)
		}
		post.Slug = *req.Slug
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, categoryLookupError(err, "id", *req.CategoryID)
		}
		post.CategoryID = category.ID
	}
	if req.TagIDs != nil {
		tags, err := s.resolveTags(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
		post.TagIDs = tagIDs(tags)
	}

	published := false
	if req.Published != nil {
		wasPublished := post.Published
		post.SetPublished(*req.Published, s.now())
		published = !wasPublished && post.Published
	}

	if err := s.save(ctx, post); err != nil {
		return nil, s.writeError("update", post, err)
	}
	if published {
		s.onPublish()
	}

	s.logger.Info("post updated", "post_id", post.ID)
	return s.single(ctx, post)
}

// Delete implements PostService.Delete
func (s *PostServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.posts.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("post deleted", "post_id", id)
		return nil
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError("Post", "id", id)
	case errors.Is(err, store.ErrReferenced):
		return domain.NewConflictErrorf(err, "Post still has comments: %d", id)
	default:
		s.logger.Error("failed to delete post", "error", err, "post_id", id)
		return wrapUnexpected("failed to delete post", err)
	}
}

// Publish implements PostService.Publish
func (s *PostServiceImpl) Publish(ctx context.Context, id int64) (*PostResponse, error) {
	return s.transition(ctx, id, func(p *domain.Post) bool {
		return p.Publish(s.now())
	})
}

// Unpublish implements PostService.Unpublish
func (s *PostServiceImpl) Unpublish(ctx context.Context, id int64) (*PostResponse, error) {
	return s.transition(ctx, id, (*domain.Post).Unpublish)
}

func (s *PostServiceImpl) transition(ctx context.Context, id int64, apply func(*domain.Post) bool) (*PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, postLookupError(err, "id", id)
	}

	if apply(post) {
		if err := s.save(ctx, post); err != nil {
			return nil, s.writeError("update", post, err)
		}
		if post.Published {
			s.onPublish()
		}
		s.logger.Info("post publication changed", "post_id", id, "published", post.Published)
	}
	return s.single(ctx, post)
}

func (s *PostServiceImpl) save(ctx context.Context, post *domain.Post) error {
	return s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return txPosts(s.posts, tx).Update(ctx, post)
	})
}

// writeError converts a failed post write into the error reported to the
// caller.
func (s *PostServiceImpl) writeError(op string, post *domain.Post, err error) error {
	switch {
	case errors.Is(err, store.ErrTagNotFound):
		return &domain.ResourceError{Kind: domain.ErrNotFound, Message: "Tag not found", Err: err}
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError("Post", "id", post.ID)
	}
	if conflict := conflictFromStore(err, map[error]string{store.ErrSlugExists: post.Slug}); conflict != nil {
		return conflict
	}
	if errors.Is(err, store.ErrReferenced) {
		return &domain.ResourceError{Kind: domain.ErrNotFound, Message: "Referenced category or author not found", Err: err}
	}
	s.logger.Error("failed to write post", "op", op, "error", err, "post_id", post.ID)
	return wrapUnexpected(fmt.Sprintf("failed to %s post", op), err)
}

// resolveTags loads every distinct tag in ids, failing on the first id that
// does not exist.
func (s *PostServiceImpl) resolveTags(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	ids = distinctIDs(ids)
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}
	tags, err := s.tags.GetByIDs(ctx, ids)
	if err != nil {
		return nil, wrapUnexpected("failed to resolve tags", err)
	}
	byID := make(map[int64]*domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	ordered := make([]*domain.Tag, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, domain.NewNotFoundError("Tag", "id", id)
		}
		ordered = append(ordered, t)
	}
	return ordered, nil
}

func (s *PostServiceImpl) single(ctx context.Context, post *domain.Post) (*PostResponse, error) {
	out, err := s.assemble(ctx, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// assemble loads the author, category and tags referenced by posts, each
// distinct reference once, and builds the responses.
func (s *PostServiceImpl) assemble(ctx context.Context, posts []*domain.Post) ([]PostResponse, error) {
	authors := map[int64]*domain.User{}
	categories := map[int64]*domain.Category{}
	var allTagIDs []int64

	for _, p := range posts {
		if _, ok := authors[p.AuthorID]; !ok {
			u, err := s.users.GetByID(ctx, p.AuthorID)
			if err != nil {
				return nil, wrapUnexpected("failed to load post author", err)
			}
			authors[p.AuthorID] = u
		}
		if _, ok := categories[p.CategoryID]; !ok {
			c, err := s.categories.GetByID(ctx, p.CategoryID)
			if err != nil {
				return nil, wrapUnexpected("failed to load post category", err)
			}
			categories[p.CategoryID] = c
		}
		allTagIDs = append(allTagIDs, p.TagIDs...)
	}

	tagsByID := map[int64]*domain.Tag{}
	if ids := distinctIDs(allTagIDs); len(ids) > 0 {
		tags, err := s.tags.GetByIDs(ctx, ids)
		if err != nil {
			return nil, wrapUnexpected("failed to load post tags", err)
		}
		for _, t := range tags {
			tagsByID[t.ID] = t
		}
	}

	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		tags := make([]*domain.Tag, 0, len(p.TagIDs))
		for _, id := range p.TagIDs {
			if t, ok := tagsByID[id]; ok {
				tags = append(tags, t)
			}
		}
		out = append(out, ToPostResponse(p, authors[p.AuthorID], categories[p.CategoryID], tags))
	}
	return out, nil
}

func postLookupError(err error, field string, value any) error {
	if store.IsNotFoundError(err) {
		return domain.NewNotFoundError("Post", field, value)
	}
	return wrapUnexpected("failed to retrieve post", err)
}

func userLookupError(err error, id int64) error {
	if store.IsNotFoundError(err) {
		return domain.NewNotFoundError("User", "id", id)
	}
	return wrapUnexpected("failed to retrieve user", err)
}

func tagIDs(tags []*domain.Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func distinctIDs(ids []int64) []int64 {
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
