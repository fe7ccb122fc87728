package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// TagService manages tags.
type TagService interface {
	Create(ctx context.Context, req TagRequest) (*TagResponse, error)
	GetByID(ctx context.Context, id int64) (*TagResponse, error)
	GetByName(ctx context.Context, name string) (*TagResponse, error)
	GetAll(ctx context.Context) ([]TagResponse, error)
	Search(ctx context.Context, keyword string) ([]TagResponse, error)
	Update(ctx context.Context, id int64, req TagRequest) (*TagResponse, error)
	// Delete also removes the tag from every post carrying it.
	Delete(ctx context.Context, id int64) error
}

type TagServiceImpl struct {
	tags   store.TagStore
	logger *slog.Logger
}

func NewTagService(tags store.TagStore, logger *slog.Logger) *TagServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagServiceImpl{
		tags:   tags,
		logger: logger.With("component", "tag_service"),
	}
}

var _ TagService = (*TagServiceImpl)(nil)

func (s *TagServiceImpl) Create(ctx context.Context, req TagRequest) (*TagResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	taken, err := s.tags.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, wrapUnexpected("failed to check tag name", err)
	}
	if taken {
		return nil, domain.NewConflictError("Tag name", req.Name)
	}

	tag := &domain.Tag{Name: req.Name}
	if err := s.tags.Create(ctx, tag); err != nil {
		if conflict := conflictFromStore(err, map[error]string{store.ErrTagNameExists: req.Name}); conflict != nil {
			return nil, conflict
		}
		s.logger.Error("failed to create tag", "error", err)
		return nil, wrapUnexpected("failed to create tag", err)
	}

	s.logger.Info("tag created", "tag_id", tag.ID)
	resp := ToTagResponse(tag)
	return &resp, nil
}

func (s *TagServiceImpl) GetByID(ctx context.Context, id int64) (*TagResponse, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, tagLookupError(err, "id", id)
	}
	resp := ToTagResponse(tag)
	return &resp, nil
}

func (s *TagServiceImpl) GetByName(ctx context.Context, name string) (*TagResponse, error) {
	tag, err := s.tags.GetByName(ctx, name)
	if err != nil {
		return nil, tagLookupError(err, "name", name)
	}
	resp := ToTagResponse(tag)
	return &resp, nil
}

func (s *TagServiceImpl) GetAll(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("failed to list tags", err)
	}
	return ToTagResponses(tags), nil
}

// Search returns tags whose name contains keyword, ignoring case.
func (s *TagServiceImpl) Search(ctx context.Context, keyword string) ([]TagResponse, error) {
	if err := keywordErrors(keyword).Err(); err != nil {
		return nil, err
	}
	tags, err := s.tags.Search(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, wrapUnexpected("failed to search tags", err)
	}
	return ToTagResponses(tags), nil
}

func (s *TagServiceImpl) Update(ctx context.Context, id int64, req TagRequest) (*TagResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, tagLookupError(err, "id", id)
	}

	if req.Name != tag.Name {
		taken, err := s.tags.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, wrapUnexpected("failed to check tag name", err)
		}
		if taken {
			return nil, domain.NewConflictError("Tag name", req.Name)
		}
		tag.Name = req.Name
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("Tag", "id", id)
		}
		if conflict := conflictFromStore(err, map[error]string{store.ErrTagNameExists: tag.Name}); conflict != nil {
			return nil, conflict
		}
		return nil, wrapUnexpected("failed to update tag", err)
	}

	s.logger.Info("tag updated", "tag_id", id)
	resp := ToTagResponse(tag)
	return &resp, nil
}

func (s *TagServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.tags.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("tag deleted", "tag_id", id)
		return nil
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError("Tag", "id", id)
	default:
		s.logger.Error("failed to delete tag", "error", err, "tag_id", id)
		return wrapUnexpected("failed to delete tag", err)
	}
}

func tagLookupError(err error, field string, value any) error {
	if store.IsNotFoundError(err) {
		return domain.NewNotFoundError("Tag", field, value)
	}
	return wrapUnexpected("failed to retrieve tag", err)
}
