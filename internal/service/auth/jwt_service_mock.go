package auth

import (
	"context"
	"time"
)

// MockJWTService is a function-field implementation of JWTService for tests.
// Unset functions fall back to the fixed fields.
type MockJWTService struct {
	GenerateTokenFunc  func(ctx context.Context, subject string, extra map[string]any) (string, error)
	ValidateTokenFunc  func(ctx context.Context, tokenString string) (*Claims, error)
	ExtractSubjectFunc func(ctx context.Context, tokenString string) (string, error)
	IsTokenValidFunc   func(ctx context.Context, tokenString, expectedSubject string) (bool, error)

	Token           string
	TokenError      error
	ValidationError error
	Claims          *Claims
}

// NewMockJWTService returns a mock that issues "mock-jwt-token" and
// validates every token as belonging to subject.
func NewMockJWTService(subject string) *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token: "mock-jwt-token",
		Claims: &Claims{
			Subject:   subject,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        "mock-token-id",
			Extra:     map[string]any{},
		},
	}
}

var _ JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, subject string, extra map[string]any) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, subject, extra)
	}
	return m.Token, m.TokenError
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}

func (m *MockJWTService) ExtractSubject(ctx context.Context, tokenString string) (string, error) {
	if m.ExtractSubjectFunc != nil {
		return m.ExtractSubjectFunc(ctx, tokenString)
	}
	claims, err := m.ValidateToken(ctx, tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (m *MockJWTService) IsTokenValid(ctx context.Context, tokenString, expectedSubject string) (bool, error) {
	if m.IsTokenValidFunc != nil {
		return m.IsTokenValidFunc(ctx, tokenString, expectedSubject)
	}
	claims, err := m.ValidateToken(ctx, tokenString)
	if err != nil {
		return false, err
	}
	return claims.Subject == expectedSubject, nil
}
