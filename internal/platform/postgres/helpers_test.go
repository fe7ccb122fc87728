package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

type stores struct {
	users      *postgres.PostgresUserStore
	categories *postgres.PostgresCategoryStore
	tags       *postgres.PostgresTagStore
	posts      *postgres.PostgresPostStore
	comments   *postgres.PostgresCommentStore
}

func newStores(db *sql.DB) stores {
	return stores{
		users:      postgres.NewPostgresUserStore(db, nil),
		categories: postgres.NewPostgresCategoryStore(db, nil),
		tags:       postgres.NewPostgresTagStore(db, nil),
		posts:      postgres.NewPostgresPostStore(db, nil),
		comments:   postgres.NewPostgresCommentStore(db, nil),
	}
}

func createUser(t *testing.T, s stores, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "$2a$04$placeholderhash",
		FullName:       strings.ToUpper(username),
		Role:           domain.RoleUser,
	}
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

func createCategory(t *testing.T, s stores, name string) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Description: name + " articles"}
	require.NoError(t, s.categories.Create(context.Background(), c))
	return c
}

func createTag(t *testing.T, s stores, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name}
	require.NoError(t, s.tags.Create(context.Background(), tag))
	return tag
}

func createPost(t *testing.T, s stores, slug string, authorID, categoryID int64, tagIDs ...int64) *domain.Post {
	t.Helper()
	p := &domain.Post{
		Title:      "Title for " + slug,
		Slug:       slug,
		Content:    fmt.Sprintf("%s %s", slug, strings.Repeat("lorem ipsum ", 6)),
		AuthorID:   authorID,
		CategoryID: categoryID,
		TagIDs:     tagIDs,
	}
	require.NoError(t, s.posts.Create(context.Background(), p))
	return p
}
