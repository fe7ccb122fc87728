package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/mocks"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	users    *mocks.MockUserStore
	comments *mocks.MockCommentStore
	hasher   *mocks.MockPasswordHasher
	tx       *mocks.TxRunner
	svc      *service.UserServiceImpl
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    new(mocks.MockUserStore),
		comments: new(mocks.MockCommentStore),
		hasher:   mocks.NewMockPasswordHasher(),
		tx:       mocks.NewTxRunner(),
	}
	f.svc = service.NewUserService(f.users, f.comments, f.hasher, f.tx, quietLogger())
	return f
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()
	valid := service.UserCreateRequest{
		Username: "alice1",
		Email:    "alice@example.com",
		Password: "secret1",
		FullName: "Alice",
	}

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByUsername", ctx, "alice1").Return(false, nil)
		f.users.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.HashedPassword == "hashed:secret1" && u.Role == domain.RoleUser
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil)

		resp, err := f.svc.Create(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "USER", resp.Role)
		assert.Equal(t, 1, f.hasher.HashCallCount)
		f.users.AssertExpectations(t)
	})

	t.Run("explicit admin role", func(t *testing.T) {
		f := newUserFixture()
		req := valid
		req.Role = "ADMIN"
		f.users.On("ExistsByUsername", ctx, "alice1").Return(false, nil)
		f.users.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin
		})).Return(nil)

		resp, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByUsername", ctx, "alice1").Return(true, nil)

		_, err := f.svc.Create(ctx, valid)
		requireKind(t, err, domain.ErrConflict, "Username already exists: alice1")
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByUsername", ctx, "alice1").Return(false, nil)
		f.users.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		_, err := f.svc.Create(ctx, valid)
		requireKind(t, err, domain.ErrConflict, "Email already exists: alice@example.com")
	})

	t.Run("losing a uniqueness race", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByUsername", ctx, "alice1").Return(false, nil)
		f.users.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		f.users.On("Create", ctx, mock.Anything).Return(store.ErrEmailExists)

		_, err := f.svc.Create(ctx, valid)
		requireKind(t, err, domain.ErrConflict, "Email already exists: alice@example.com")
	})

	t.Run("invalid fields", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.svc.Create(ctx, service.UserCreateRequest{
			Username: "bob",
			Email:    "not-an-email",
			Password: "123",
			Role:     "ROOT",
		})
		requireKind(t, err, domain.ErrValidation, "")
		fields := fieldErrors(t, err)
		assert.Equal(t, "Username must be between 5 and 20 characters", fields["username"])
		assert.Equal(t, "Email must be valid", fields["email"])
		assert.Equal(t, "Password must be at least 6 characters", fields["password"])
		assert.Equal(t, "Role must be USER or ADMIN", fields["role"])
		f.users.AssertNotCalled(t, "ExistsByUsername", mock.Anything, mock.Anything)
	})
}

func TestUserServiceLookups(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	alice := testUser(3, "alice1")
	f.users.On("GetByID", ctx, int64(3)).Return(alice, nil)
	f.users.On("GetByID", ctx, int64(9)).Return(nil, store.ErrUserNotFound)
	f.users.On("GetByUsername", ctx, "ghost").Return(nil, store.ErrUserNotFound)
	f.users.On("GetByEmail", ctx, "alice1@example.com").Return(alice, nil)
	f.users.On("List", ctx).Return([]*domain.User{alice}, nil)

	resp, err := f.svc.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "alice1", resp.Username)

	_, err = f.svc.GetByID(ctx, 9)
	requireKind(t, err, domain.ErrNotFound, "User not found with id: 9")

	_, err = f.svc.GetByUsername(ctx, "ghost")
	requireKind(t, err, domain.ErrNotFound, "User not found with username: ghost")

	resp, err = f.svc.GetByEmail(ctx, "alice1@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	broken := newUserFixture()
	broken.users.On("List", ctx).Return(nil, errors.New("connection reset"))
	_, err = broken.svc.GetAll(ctx)
	require.Error(t, err)
	_, safe := domain.SafeMessage(err)
	assert.False(t, safe, "infrastructure failures must not carry a client message")
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update rehashes the password", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, int64(3)).Return(testUser(3, "alice1"), nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.HashedPassword == "hashed:newsecret" && u.FullName == "Alice A." && u.Email == "alice1@example.com"
		})).Return(nil)

		name, pw := "Alice A.", "newsecret"
		resp, err := f.svc.Update(ctx, 3, service.UserUpdateRequest{FullName: &name, Password: &pw})
		require.NoError(t, err)
		assert.Equal(t, "Alice A.", resp.FullName)
		f.users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
		f.users.AssertExpectations(t)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, int64(3)).Return(testUser(3, "alice1"), nil)
		f.users.On("Update", ctx, mock.Anything).Return(nil)

		email := "alice1@example.com"
		_, err := f.svc.Update(ctx, 3, service.UserUpdateRequest{Email: &email})
		require.NoError(t, err)
		f.users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, int64(3)).Return(testUser(3, "alice1"), nil)
		f.users.On("ExistsByEmail", ctx, "bob@example.com").Return(true, nil)

		email := "bob@example.com"
		_, err := f.svc.Update(ctx, 3, service.UserUpdateRequest{Email: &email})
		requireKind(t, err, domain.ErrConflict, "Email already exists: bob@example.com")
	})

	t.Run("missing user", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, int64(4)).Return(nil, store.ErrUserNotFound)

		_, err := f.svc.Update(ctx, 4, service.UserUpdateRequest{})
		requireKind(t, err, domain.ErrNotFound, "User not found with id: 4")
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes comments on the user's posts first", func(t *testing.T) {
		f := newUserFixture()
		var order []string
		f.users.On("GetByID", ctx, int64(3)).Return(testUser(3, "alice1"), nil)
		f.comments.On("DeleteByPostAuthor", ctx, int64(3)).
			Run(func(mock.Arguments) { order = append(order, "comments") }).
			Return(int64(2), nil)
		f.users.On("Delete", ctx, int64(3)).
			Run(func(mock.Arguments) { order = append(order, "user") }).
			Return(nil)

		require.NoError(t, f.svc.Delete(ctx, 3))
		assert.Equal(t, []string{"comments", "user"}, order)
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("missing user", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, int64(5)).Return(nil, store.ErrUserNotFound)

		err := f.svc.Delete(ctx, 5)
		requireKind(t, err, domain.ErrNotFound, "User not found with id: 5")
		assert.Equal(t, 0, f.tx.Calls)
	})

	t.Run("comment cleanup failure aborts", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, int64(3)).Return(testUser(3, "alice1"), nil)
		f.comments.On("DeleteByPostAuthor", ctx, int64(3)).Return(int64(0), errors.New("disk full"))

		err := f.svc.Delete(ctx, 3)
		require.Error(t, err)
		f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUserServiceBootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the admin once", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByUsername", ctx, "admin").Return(false, nil)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin && u.HashedPassword == "$2a$10$precomputed"
		})).Return(nil)

		created, err := f.svc.BootstrapAdmin(ctx, "admin", "admin@example.com", "$2a$10$precomputed")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 0, f.hasher.HashCallCount)
	})

	t.Run("existing username is left alone", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("ExistsByUsername", ctx, "admin").Return(true, nil)

		created, err := f.svc.BootstrapAdmin(ctx, "admin", "admin@example.com", "$2a$10$precomputed")
		require.NoError(t, err)
		assert.False(t, created)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
