package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/phrazzld/quill-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStores(testdb.GetTestDBWithT(t))

	u := createUser(t, s, "alice01")
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	byID, err := s.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice01", byID.Username)
	assert.Equal(t, "alice01@example.com", byID.Email)
	assert.Equal(t, domain.RoleUser, byID.Role)
	assert.Equal(t, u.HashedPassword, byID.HashedPassword)

	byName, err := s.users.GetByUsername(ctx, "alice01")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := s.users.GetByEmail(ctx, "alice01@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	found, err := s.users.ExistsByUsername(ctx, "alice01")
	require.NoError(t, err)
	assert.True(t, found)
	found, err = s.users.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.users.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestUserStoreUniqueViolations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStores(testdb.GetTestDBWithT(t))

	createUser(t, s, "alice01")

	err := s.users.Create(ctx, &domain.User{
		Username: "alice01", Email: "other@example.com", HashedPassword: "x", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, store.ErrUsernameExists)

	err = s.users.Create(ctx, &domain.User{
		Username: "bobby01", Email: "alice01@example.com", HashedPassword: "x", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStoreUpdateAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStores(testdb.GetTestDBWithT(t))

	alice := createUser(t, s, "alice01")
	createUser(t, s, "bobby01")

	alice.FullName = "Alice Liddell"
	alice.Role = domain.RoleAdmin
	require.NoError(t, s.users.Update(ctx, alice))

	got, err := s.users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.FullName)
	assert.True(t, got.IsAdmin())

	alice.Email = "bobby01@example.com"
	assert.ErrorIs(t, s.users.Update(ctx, alice), store.ErrEmailExists)

	missing := &domain.User{ID: 777, Email: "m@example.com", Role: domain.RoleUser}
	assert.ErrorIs(t, s.users.Update(ctx, missing), store.ErrUserNotFound)

	users, err := s.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice01", users[0].Username)
	assert.Equal(t, "bobby01", users[1].Username)
}

func TestUserStoreDeleteCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStores(testdb.GetTestDBWithT(t))

	alice := createUser(t, s, "alice01")
	bob := createUser(t, s, "bobby01")
	cat := createCategory(t, s, "Tech")
	tag := createTag(t, s, "go")
	alicePost := createPost(t, s, "alice-post", alice.ID, cat.ID, tag.ID)
	bobPost := createPost(t, s, "bobby-post", bob.ID, cat.ID)

	aliceOnBob := &domain.Comment{Content: "nice one", PostID: bobPost.ID, AuthorID: alice.ID}
	require.NoError(t, s.comments.Create(ctx, aliceOnBob))
	bobOnAlice := &domain.Comment{Content: "thanks!", PostID: alicePost.ID, AuthorID: bob.ID}
	require.NoError(t, s.comments.Create(ctx, bobOnAlice))

	// Comments left by others on alice's posts block the cascade until
	// they are removed.
	err := s.users.Delete(ctx, alice.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrReferenced))

	n, err := s.comments.DeleteByPostAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.users.Delete(ctx, alice.ID))

	_, err = s.posts.GetByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, store.ErrPostNotFound)
	_, err = s.comments.GetByID(ctx, aliceOnBob.ID)
	assert.ErrorIs(t, err, store.ErrCommentNotFound)

	_, err = s.posts.GetByID(ctx, bobPost.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.users.Delete(ctx, alice.ID), store.ErrUserNotFound)
}
