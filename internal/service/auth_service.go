package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

const invalidCredentialsMessage = "Invalid username or password"

// AuthService handles public registration and login.
type AuthService interface {
	// Register creates a USER account and returns a token for it.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	// Login checks the credentials and returns a token carrying the role.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type AuthServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger

	// decoyHash stands in for the stored hash on unknown usernames.
	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "auth_service"),
	}
}

var _ AuthService = (*AuthServiceImpl)(nil)

// Register implements AuthService.Register
func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	user, err := createAccount(ctx, s.users, s.hasher, accountFields{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return &AuthResponse{Token: token, Message: "User registered successfully"}, nil
}

// Login implements AuthService.Login
func (s *AuthServiceImpl) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("login for unknown username")
			s.compareDecoy(req.Password)
			return nil, domain.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, wrapUnexpected("failed to retrieve user", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Debug("login with wrong password", "user_id", user.ID)
			return nil, domain.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, wrapUnexpected("failed to verify password", err)
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResponse{Token: token, Message: "Login successful"}, nil
}

func (s *AuthServiceImpl) compareDecoy(password string) {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash("quill-decoy-password")
		if err != nil {
			s.logger.Warn("failed to prepare decoy hash", "error", err)
			return
		}
		s.decoyHash = hash
	})
	if s.decoyHash != "" {
		_ = s.hasher.Compare(s.decoyHash, password)
	}
}

func (s *AuthServiceImpl) issue(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.tokens.GenerateToken(ctx, user.Username, map[string]any{
		auth.RoleClaim: string(user.Role),
	})
	if err != nil {
		return "", wrapUnexpected("failed to generate token", err)
	}
	return token, nil
}
