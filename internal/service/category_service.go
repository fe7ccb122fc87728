package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// CategoryService manages post categories.
type CategoryService interface {
	Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error)
	GetByID(ctx context.Context, id int64) (*CategoryResponse, error)
	GetByName(ctx context.Context, name string) (*CategoryResponse, error)
	GetAll(ctx context.Context) ([]CategoryResponse, error)
	Search(ctx context.Context, keyword string) ([]CategoryResponse, error)
	Update(ctx context.Context, id int64, req CategoryUpdateRequest) (*CategoryResponse, error)
	// Delete fails with a conflict while any post still uses the category.
	Delete(ctx context.Context, id int64) error
}

type CategoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) *CategoryServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryServiceImpl{
		categories: categories,
		logger:     logger.With("component", "category_service"),
	}
}

var _ CategoryService = (*CategoryServiceImpl)(nil)

func (s *CategoryServiceImpl) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	taken, err := s.categories.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, wrapUnexpected("failed to check category name", err)
	}
	if taken {
		return nil, domain.NewConflictError("Category name", req.Name)
	}

	category := &domain.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		if conflict := conflictFromStore(err, map[error]string{store.ErrCategoryNameExists: req.Name}); conflict != nil {
			return nil, conflict
		}
		s.logger.Error("failed to create category", "error", err)
		return nil, wrapUnexpected("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", category.ID)
	resp := ToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id int64) (*CategoryResponse, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, categoryLookupError(err, "id", id)
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryServiceImpl) GetByName(ctx context.Context, name string) (*CategoryResponse, error) {
	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return nil, categoryLookupError(err, "name", name)
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("failed to list categories", err)
	}
	return ToCategoryResponses(categories), nil
}

// Search returns categories whose name contains keyword, ignoring case.
func (s *CategoryServiceImpl) Search(ctx context.Context, keyword string) ([]CategoryResponse, error) {
	if err := keywordErrors(keyword).Err(); err != nil {
		return nil, err
	}
	categories, err := s.categories.Search(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, wrapUnexpected("failed to search categories", err)
	}
	return ToCategoryResponses(categories), nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id int64, req CategoryUpdateRequest) (*CategoryResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, categoryLookupError(err, "id", id)
	}

	if req.Name != nil && *req.Name != category.Name {
		taken, err := s.categories.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, wrapUnexpected("failed to check category name", err)
		}
		if taken {
			return nil, domain.NewConflictError("Category name", *req.Name)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("Category", "id", id)
		}
		if conflict := conflictFromStore(err, map[error]string{store.ErrCategoryNameExists: category.Name}); conflict != nil {
			return nil, conflict
		}
		return nil, wrapUnexpected("failed to update category", err)
	}

	s.logger.Info("category updated", "category_id", id)
	resp := ToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.categories.Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("category deleted", "category_id", id)
		return nil
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError("Category", "id", id)
	case errors.Is(err, store.ErrReferenced):
		return domain.NewConflictErrorf(err, "Category is still used by posts: %d", id)
	default:
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return wrapUnexpected("failed to delete category", err)
	}
}

func categoryLookupError(err error, field string, value any) error {
	if store.IsNotFoundError(err) {
		return domain.NewNotFoundError("Category", field, value)
	}
	return wrapUnexpected("failed to retrieve category", err)
}

// keywordErrors rejects a blank search keyword.
func keywordErrors(keyword string) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(keyword) == "" {
		errs.Add("keyword", "Keyword is required")
	}
	return errs
}
