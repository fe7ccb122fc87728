package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/mocks"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	comments *mocks.MockCommentStore
	posts    *mocks.MockPostStore
	users    *mocks.MockUserStore
	svc      *service.CommentServiceImpl
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		comments: new(mocks.MockCommentStore),
		posts:    new(mocks.MockPostStore),
		users:    new(mocks.MockUserStore),
	}
	f.svc = service.NewCommentService(f.comments, f.posts, f.users, quietLogger())
	return f
}

func TestCommentServiceCreate(t *testing.T) {
	reader := testUser(4, "reader1")
	post := &domain.Post{ID: 50, Slug: "some-post"}

	t.Run("authored by the principal", func(t *testing.T) {
		f := newCommentFixture()
		ctx := asUser(context.Background(), reader)
		f.posts.On("GetByID", ctx, int64(50)).Return(post, nil)
		f.users.On("GetByID", ctx, int64(4)).Return(reader, nil)
		f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.AuthorID == 4 && c.PostID == 50
		})).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Comment)
			c.ID, c.CreatedAt = 900, fixedNow
		}).Return(nil)

		resp, err := f.svc.Create(ctx, service.CommentCreateRequest{Content: "Great read!", PostID: 50})
		require.NoError(t, err)
		assert.Equal(t, int64(900), resp.ID)
		assert.Equal(t, int64(50), resp.PostID)
		assert.Equal(t, "reader1", resp.Author.Username)
		assert.Equal(t, fixedNow, resp.CreatedAt)
	})

	t.Run("anonymous is a bad request", func(t *testing.T) {
		f := newCommentFixture()
		_, err := f.svc.Create(context.Background(), service.CommentCreateRequest{Content: "Great read!", PostID: 50})
		requireKind(t, err, domain.ErrBadRequest, "")
		f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown post", func(t *testing.T) {
		f := newCommentFixture()
		ctx := asUser(context.Background(), reader)
		f.posts.On("GetByID", ctx, int64(51)).Return(nil, store.ErrPostNotFound)

		_, err := f.svc.Create(ctx, service.CommentCreateRequest{Content: "Great read!", PostID: 51})
		requireKind(t, err, domain.ErrNotFound, "Post not found with id: 51")
	})

	t.Run("deleted principal", func(t *testing.T) {
		f := newCommentFixture()
		ctx := asUser(context.Background(), reader)
		f.posts.On("GetByID", ctx, int64(50)).Return(post, nil)
		f.users.On("GetByID", ctx, int64(4)).Return(nil, store.ErrUserNotFound)

		_, err := f.svc.Create(ctx, service.CommentCreateRequest{Content: "Great read!", PostID: 50})
		requireKind(t, err, domain.ErrNotFound, "User not found with id: 4")
	})

	t.Run("validation", func(t *testing.T) {
		f := newCommentFixture()
		_, err := f.svc.Create(asUser(context.Background(), reader), service.CommentCreateRequest{Content: "hey"})
		fields := fieldErrors(t, err)
		assert.Equal(t, "Content must be between 5 and 1000 characters", fields["content"])
		assert.Equal(t, "Post Id is required", fields["postId"])
	})
}

func TestCommentServiceQueries(t *testing.T) {
	ctx := context.Background()
	alice, bob := testUser(1, "alice1"), testUser(2, "bob123")
	comments := []*domain.Comment{
		{ID: 1, Content: "first!", PostID: 50, AuthorID: 1},
		{ID: 2, Content: "second", PostID: 50, AuthorID: 2},
		{ID: 3, Content: "third.", PostID: 50, AuthorID: 1},
	}

	f := newCommentFixture()
	f.users.On("GetByID", ctx, int64(1)).Return(alice, nil)
	f.users.On("GetByID", ctx, int64(2)).Return(bob, nil)
	f.users.On("GetByID", ctx, int64(3)).Return(nil, store.ErrUserNotFound)
	f.posts.On("GetByID", ctx, int64(50)).Return(&domain.Post{ID: 50}, nil)
	f.posts.On("GetByID", ctx, int64(60)).Return(nil, store.ErrPostNotFound)
	f.comments.On("ListByPost", ctx, int64(50)).Return(comments, nil)
	f.comments.On("ListByAuthor", ctx, int64(1)).Return([]*domain.Comment{comments[0], comments[2]}, nil)
	f.comments.On("List", ctx).Return(comments, nil)
	f.comments.On("GetByID", ctx, int64(2)).Return(comments[1], nil)
	f.comments.On("GetByID", ctx, int64(7)).Return(nil, store.ErrCommentNotFound)
	f.comments.On("Delete", ctx, int64(2)).Return(nil)
	f.comments.On("Delete", ctx, int64(7)).Return(store.ErrCommentNotFound)

	byPost, err := f.svc.GetByPostID(ctx, 50)
	require.NoError(t, err)
	require.Len(t, byPost, 3)
	assert.Equal(t, "bob123", byPost[1].Author.Username)

	_, err = f.svc.GetByPostID(ctx, 60)
	requireKind(t, err, domain.ErrNotFound, "Post not found with id: 60")

	byAuthor, err := f.svc.GetByAuthorID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	_, err = f.svc.GetByAuthorID(ctx, 3)
	requireKind(t, err, domain.ErrNotFound, "User not found with id: 3")

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := f.svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "second", one.Content)

	_, err = f.svc.GetByID(ctx, 7)
	requireKind(t, err, domain.ErrNotFound, "Comment not found with id: 7")

	require.NoError(t, f.svc.Delete(ctx, 2))
	requireKind(t, f.svc.Delete(ctx, 7), domain.ErrNotFound, "Comment not found with id: 7")
}
