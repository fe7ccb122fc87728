package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCategoryStore is a testify mock of store.CategoryStore.
type MockCategoryStore struct {
	mock.Mock
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// Create is a mock implementation of store.CategoryStore.Create
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// GetByID is a mock implementation of store.CategoryStore.GetByID
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByName is a mock implementation of store.CategoryStore.GetByName
func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if v, ok := args.Get(0).(*domain.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByName is a mock implementation of store.CategoryStore.ExistsByName
func (m *MockCategoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// List is a mock implementation of store.CategoryStore.List
func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*domain.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Search is a mock implementation of store.CategoryStore.Search
func (m *MockCategoryStore) Search(ctx context.Context, keyword string) ([]*domain.Category, error) {
	args := m.Called(ctx, keyword)
	if v, ok := args.Get(0).([]*domain.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.CategoryStore.Update
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// Delete is a mock implementation of store.CategoryStore.Delete
func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations hold inside transactions.
func (m *MockCategoryStore) WithTx(_ *sql.Tx) store.CategoryStore {
	return m
}

// MockTagStore is a testify mock of store.TagStore.
type MockTagStore struct {
	mock.Mock
}

var _ store.TagStore = (*MockTagStore)(nil)

// Create is a mock implementation of store.TagStore.Create
func (m *MockTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TagStore.GetByID
func (m *MockTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDs is a mock implementation of store.TagStore.GetByIDs
func (m *MockTagStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	args := m.Called(ctx, ids)
	if v, ok := args.Get(0).([]*domain.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByName is a mock implementation of store.TagStore.GetByName
func (m *MockTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	if v, ok := args.Get(0).(*domain.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByName is a mock implementation of store.TagStore.ExistsByName
func (m *MockTagStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// List is a mock implementation of store.TagStore.List
func (m *MockTagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*domain.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Search is a mock implementation of store.TagStore.Search
func (m *MockTagStore) Search(ctx context.Context, keyword string) ([]*domain.Tag, error) {
	args := m.Called(ctx, keyword)
	if v, ok := args.Get(0).([]*domain.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TagStore.Update
func (m *MockTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// Delete is a mock implementation of store.TagStore.Delete
func (m *MockTagStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations hold inside transactions.
func (m *MockTagStore) WithTx(_ *sql.Tx) store.TagStore {
	return m
}

// MockPostStore is a testify mock of store.PostStore.
type MockPostStore struct {
	mock.Mock
}

var _ store.PostStore = (*MockPostStore)(nil)

// Create is a mock implementation of store.PostStore.Create
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// GetByID is a mock implementation of store.PostStore.GetByID
func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetBySlug is a mock implementation of store.PostStore.GetBySlug
func (m *MockPostStore) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	args := m.Called(ctx, slug)
	if v, ok := args.Get(0).(*domain.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsBySlug is a mock implementation of store.PostStore.ExistsBySlug
func (m *MockPostStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// List is a mock implementation of store.PostStore.List
func (m *MockPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*domain.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Find is a mock implementation of store.PostStore.Find
func (m *MockPostStore) Find(ctx context.Context, pred *store.PostPredicate) ([]*domain.Post, error) {
	args := m.Called(ctx, pred)
	if v, ok := args.Get(0).([]*domain.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.PostStore.Update
func (m *MockPostStore) Update(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// Delete is a mock implementation of store.PostStore.Delete
func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations hold inside transactions.
func (m *MockPostStore) WithTx(_ *sql.Tx) store.PostStore {
	return m
}

// MockCommentStore is a testify mock of store.CommentStore.
type MockCommentStore struct {
	mock.Mock
}

var _ store.CommentStore = (*MockCommentStore)(nil)

// Create is a mock implementation of store.CommentStore.Create
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// GetByID is a mock implementation of store.CommentStore.GetByID
func (m *MockCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Comment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.CommentStore.List
func (m *MockCommentStore) List(ctx context.Context) ([]*domain.Comment, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*domain.Comment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByPost is a mock implementation of store.CommentStore.ListByPost
func (m *MockCommentStore) ListByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, postID)
	if v, ok := args.Get(0).([]*domain.Comment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByAuthor is a mock implementation of store.CommentStore.ListByAuthor
func (m *MockCommentStore) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, authorID)
	if v, ok := args.Get(0).([]*domain.Comment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.CommentStore.Delete
func (m *MockCommentStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteByPostAuthor is a mock implementation of store.CommentStore.DeleteByPostAuthor
func (m *MockCommentStore) DeleteByPostAuthor(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx returns the mock itself so expectations hold inside transactions.
func (m *MockCommentStore) WithTx(_ *sql.Tx) store.CommentStore {
	return m
}
