package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
	"github.com/phrazzld/quill-api/internal/service/auth"
	"github.com/phrazzld/quill-api/internal/store"
)

const bearerPrefix = "Bearer "

// AuthMiddleware binds the principal named by a bearer token to the request
// context. It never rejects a request itself: access decisions belong to
// the route Policy.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users store.UserStore, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger.With("component", "auth_middleware"),
	}
}

// Authenticate resolves the bearer token, if any. A missing header, a
// malformed, expired or mismatched token, or a subject that no longer
// exists all leave the request anonymous.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, bound := domain.PrincipalFromContext(ctx); bound {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		log := logger.FromContextOrDefault(ctx, m.logger)

		subject, err := m.jwtService.ExtractSubject(ctx, token)
		if err != nil {
			log.Debug("ignoring unusable bearer token", "error", redact.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetByUsername(ctx, subject)
		if err != nil {
			if !store.IsNotFoundError(err) {
				log.Warn("failed to load token subject", "error", redact.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		valid, err := m.jwtService.IsTokenValid(ctx, token, user.Username)
		if err != nil || !valid {
			log.Debug("bearer token rejected", "user_id", user.ID)
			next.ServeHTTP(w, r)
			return
		}

		ctx = domain.WithPrincipal(ctx, domain.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		ctx = logger.WithLogger(ctx, log.With("user_id", user.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
