package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// CommentService manages comments on posts.
type CommentService interface {
	// Create adds a comment authored by the principal bound to ctx.
	Create(ctx context.Context, req CommentCreateRequest) (*CommentResponse, error)
	GetByID(ctx context.Context, id int64) (*CommentResponse, error)
	GetAll(ctx context.Context) ([]CommentResponse, error)
	GetByPostID(ctx context.Context, postID int64) ([]CommentResponse, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]CommentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type CommentServiceImpl struct {
	comments store.CommentStore
	posts    store.PostStore
	users    store.UserStore
	logger   *slog.Logger
}

func NewCommentService(
	comments store.CommentStore,
	posts store.PostStore,
	users store.UserStore,
	logger *slog.Logger,
) *CommentServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentServiceImpl{
		comments: comments,
		posts:    posts,
		users:    users,
		logger:   logger.With("component", "comment_service"),
	}
}

var _ CommentService = (*CommentServiceImpl)(nil)

// Create implements CommentService.Create
func (s *CommentServiceImpl) Create(ctx context.Context, req CommentCreateRequest) (*CommentResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	principal, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return nil, domain.NewBadRequestError("An authenticated user is required to create a comment")
	}

	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		return nil, postLookupError(err, "id", req.PostID)
	}
	author, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, userLookupError(err, principal.UserID)
	}

	comment := &domain.Comment{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, store.ErrReferenced) {
			return nil, domain.NewNotFoundError("Post", "id", req.PostID)
		}
		s.logger.Error("failed to create comment", "error", err, "post_id", req.PostID)
		return nil, wrapUnexpected("failed to create comment", err)
	}

	s.logger.Info("comment created", "comment_id", comment.ID, "post_id", comment.PostID)
	resp := ToCommentResponse(comment, author)
	return &resp, nil
}

// GetByID implements CommentService.GetByID
func (s *CommentServiceImpl) GetByID(ctx context.Context, id int64) (*CommentResponse, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("Comment", "id", id)
		}
		return nil, wrapUnexpected("failed to retrieve comment", err)
	}
	out, err := s.assemble(ctx, []*domain.Comment{comment})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// GetAll implements CommentService.GetAll
func (s *CommentServiceImpl) GetAll(ctx context.Context) ([]CommentResponse, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("failed to list comments", err)
	}
	return s.assemble(ctx, comments)
}

// GetByPostID implements CommentService.GetByPostID
func (s *CommentServiceImpl) GetByPostID(ctx context.Context, postID int64) ([]CommentResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, postLookupError(err, "id", postID)
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, wrapUnexpected("failed to list comments", err)
	}
	return s.assemble(ctx, comments)
}

// GetByAuthorID implements CommentService.GetByAuthorID
func (s *CommentServiceImpl) GetByAuthorID(ctx context.Context, authorID int64) ([]CommentResponse, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, userLookupError(err, authorID)
	}
	comments, err := s.comments.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, wrapUnexpected("failed to list comments", err)
	}
	return s.assemble(ctx, comments)
}

// Delete implements CommentService.Delete
func (s *CommentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewNotFoundError("Comment", "id", id)
		}
		s.logger.Error("failed to delete comment", "error", err, "comment_id", id)
		return wrapUnexpected("failed to delete comment", err)
	}
	s.logger.Info("comment deleted", "comment_id", id)
	return nil
}

func (s *CommentServiceImpl) assemble(ctx context.Context, comments []*domain.Comment) ([]CommentResponse, error) {
	authors := map[int64]*domain.User{}
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		author, ok := authors[c.AuthorID]
		if !ok {
			u, err := s.users.GetByID(ctx, c.AuthorID)
			if err != nil {
				return nil, wrapUnexpected("failed to load comment author", err)
			}
			authors[c.AuthorID], author = u, u
		}
		out = append(out, ToCommentResponse(c, author))
	}
	return out, nil
}
