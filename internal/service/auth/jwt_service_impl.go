package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/platform/logger"
)

// registeredClaims are set by the service and cannot be overridden by
// extra claims.
var registeredClaims = map[string]struct{}{
	"sub": {}, "iat": {}, "exp": {}, "jti": {}, "nbf": {}, "iss": {}, "aud": {},
}

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference for validation to handle clock drift
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	return NewJWTServiceWithClock(cfg.JWTSecret,
		time.Duration(cfg.TokenLifetimeMinutes)*time.Minute, time.Now)
}

// NewJWTServiceWithClock is NewJWTService with an explicit lifetime and
// clock.
func NewJWTServiceWithClock(secret string, lifetime time.Duration, now func() time.Time) (JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     30 * time.Second,
	}, nil
}

// GenerateToken creates a signed JWT with the subject and extra claims.
func (s *hmacJWTService) GenerateToken(
	ctx context.Context,
	subject string,
	extraClaims map[string]any,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		if _, reserved := registeredClaims[k]; reserved {
			continue
		}
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(s.tokenLifetime))
	claims["jti"] = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a JWT and returns its claims.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			log.Debug("token validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	subject, err := mc.GetSubject()
	if err != nil || subject == "" {
		log.Debug("token validation failed: missing subject")
		return nil, ErrInvalidToken
	}

	claims := &Claims{Subject: subject, Extra: map[string]any{}}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if jti, ok := mc["jti"].(string); ok {
		claims.ID = jti
	}
	for k, v := range mc {
		if _, reserved := registeredClaims[k]; !reserved {
			claims.Extra[k] = v
		}
	}
	if role, ok := mc[RoleClaim].(string); ok {
		claims.Role = role
	}

	log.Debug("token validated successfully",
		"subject", subject,
		"token_id", claims.ID,
		"expiry", claims.ExpiresAt)
	return claims, nil
}

// ExtractSubject implements JWTService.ExtractSubject
func (s *hmacJWTService) ExtractSubject(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsTokenValid implements JWTService.IsTokenValid
func (s *hmacJWTService) IsTokenValid(
	ctx context.Context,
	tokenString, expectedSubject string,
) (bool, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return false, nil
		}
		return false, err
	}
	return claims.Subject == expectedSubject, nil
}
