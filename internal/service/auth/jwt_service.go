package auth

import (
	"context"
	"time"
)

// JWTService issues and checks the bearer tokens used by the API.
// Tokens are stateless; there is no revocation.
type JWTService interface {
	// GenerateToken signs a token for subject (the username). extraClaims are
	// merged into the payload; the registered claims sub, iat, exp and jti
	// always win.
	GenerateToken(ctx context.Context, subject string, extraClaims map[string]any) (string, error)

	// ValidateToken checks signature and expiry and returns the claims.
	// Returns ErrExpiredToken for an expired token and ErrInvalidToken for
	// anything that cannot be decoded or verified.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ExtractSubject returns the sub claim of a valid token.
	ExtractSubject(ctx context.Context, tokenString string) (string, error)

	// IsTokenValid reports whether the token belongs to expectedSubject and
	// has not expired. An expired or mismatched token yields (false, nil);
	// a token that cannot be decoded yields (false, err).
	IsTokenValid(ctx context.Context, tokenString, expectedSubject string) (bool, error)
}

// Claims is the decoded payload of a token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
	// Extra holds every non-registered claim, including role.
	Extra map[string]any
}

// RoleClaim is the extra claim carrying the user's role.
const RoleClaim = "role"
