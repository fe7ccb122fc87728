package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

// UserService manages user accounts. Every operation is restricted to
// administrators by the route policy.
type UserService interface {
	Create(ctx context.Context, req UserCreateRequest) (*UserResponse, error)
	GetByID(ctx context.Context, id int64) (*UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	Update(ctx context.Context, id int64, req UserUpdateRequest) (*UserResponse, error)
	// Delete removes the user with their posts and comments. Comments other
	// users left on those posts are removed as well.
	Delete(ctx context.Context, id int64) error
	// BootstrapAdmin creates an ADMIN account from a precomputed password
	// hash unless the username is already taken. It reports whether an
	// account was created.
	BootstrapAdmin(ctx context.Context, username, email, passwordHash string) (bool, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	comments store.CommentStore
	hasher   auth.PasswordHasher
	tx       store.TxRunner
	logger   *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	comments store.CommentStore,
	hasher auth.PasswordHasher,
	tx store.TxRunner,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		comments: comments,
		hasher:   hasher,
		tx:       tx,
		logger:   logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Create implements UserService.Create
func (s *UserServiceImpl) Create(ctx context.Context, req UserCreateRequest) (*UserResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	user, err := createAccount(ctx, s.users, s.hasher, accountFields{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID implements UserService.GetByID
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	return s.lookupResult(user, err, "id", id)
}

// GetByUsername implements UserService.GetByUsername
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	return s.lookupResult(user, err, "username", username)
}

// GetByEmail implements UserService.GetByEmail
func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	return s.lookupResult(user, err, "email", email)
}

func (s *UserServiceImpl) lookupResult(user *domain.User, err error, field string, value any) (*UserResponse, error) {
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("User", field, value)
		}
		s.logger.Error("failed to retrieve user", "error", err, "by", field)
		return nil, wrapUnexpected("failed to retrieve user", err)
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetAll implements UserService.GetAll
func (s *UserServiceImpl) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, wrapUnexpected("failed to list users", err)
	}
	return ToUserResponses(users), nil
}

// Update implements UserService.Update
func (s *UserServiceImpl) Update(ctx context.Context, id int64, req UserUpdateRequest) (*UserResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("User", "id", id)
		}
		return nil, wrapUnexpected("failed to retrieve user", err)
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, wrapUnexpected("failed to check email", err)
		}
		if taken {
			return nil, domain.NewConflictError("Email", *req.Email)
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, wrapUnexpected("failed to hash password", err)
		}
		user.HashedPassword = hashed
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("User", "id", id)
		}
		if conflict := conflictFromStore(err, map[error]string{store.ErrEmailExists: user.Email}); conflict != nil {
			return nil, conflict
		}
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, wrapUnexpected("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete implements UserService.Delete
func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewNotFoundError("User", "id", id)
		}
		return wrapUnexpected("failed to retrieve user", err)
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		removed, err := txComments(s.comments, tx).DeleteByPostAuthor(ctx, id)
		if err != nil {
			return err
		}
		s.logger.Debug("removed comments on user's posts", "user_id", id, "count", removed)
		return txUsers(s.users, tx).Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewNotFoundError("User", "id", id)
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return wrapUnexpected("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// BootstrapAdmin implements UserService.BootstrapAdmin
func (s *UserServiceImpl) BootstrapAdmin(ctx context.Context, username, email, passwordHash string) (bool, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, wrapUnexpected("failed to check admin username", err)
	}
	if taken {
		return false, nil
	}

	admin := &domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: passwordHash,
		FullName:       "Administrator",
		Role:           domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if store.IsDuplicateError(err) {
			return false, nil
		}
		return false, wrapUnexpected("failed to create admin", err)
	}
	s.logger.Info("bootstrap admin created", "user_id", admin.ID, "username", username)
	return true, nil
}

type accountFields struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// createAccount is shared by administrative creation and registration.
func createAccount(
	ctx context.Context,
	users store.UserStore,
	hasher auth.PasswordHasher,
	f accountFields,
) (*domain.User, error) {
	taken, err := users.ExistsByUsername(ctx, f.Username)
	if err != nil {
		return nil, wrapUnexpected("failed to check username", err)
	}
	if taken {
		return nil, domain.NewConflictError("Username", f.Username)
	}
	taken, err = users.ExistsByEmail(ctx, f.Email)
	if err != nil {
		return nil, wrapUnexpected("failed to check email", err)
	}
	if taken {
		return nil, domain.NewConflictError("Email", f.Email)
	}

	hashed, err := hasher.Hash(f.Password)
	if err != nil {
		return nil, wrapUnexpected("failed to hash password", err)
	}

	user := &domain.User{
		Username:       f.Username,
		Email:          f.Email,
		HashedPassword: hashed,
		FullName:       f.FullName,
		Role:           f.Role,
	}
	if err := users.Create(ctx, user); err != nil {
		conflict := conflictFromStore(err, map[error]string{
			store.ErrUsernameExists: f.Username,
			store.ErrEmailExists:    f.Email,
		})
		if conflict != nil {
			return nil, conflict
		}
		return nil, wrapUnexpected("failed to create user", err)
	}
	return user, nil
}

// The tx helpers bind a store to tx. A runner without a real transaction
// passes nil, and the store is used as is.

func txUsers(s store.UserStore, tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s
	}
	return s.WithTx(tx)
}

func txComments(s store.CommentStore, tx *sql.Tx) store.CommentStore {
	if tx == nil {
		return s
	}
	return s.WithTx(tx)
}

func txPosts(s store.PostStore, tx *sql.Tx) store.PostStore {
	if tx == nil {
		return s
	}
	return s.WithTx(tx)
}
