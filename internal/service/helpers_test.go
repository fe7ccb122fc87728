package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func asUser(ctx context.Context, u *domain.User) context.Context {
	return domain.WithPrincipal(ctx, domain.Principal{UserID: u.ID, Username: u.Username, Role: u.Role})
}

func testUser(id int64, username string) *domain.User {
	return &domain.User{
		ID:             id,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "hashed:secret1",
		FullName:       "Test " + username,
		Role:           domain.RoleUser,
		CreatedAt:      fixedNow,
		UpdatedAt:      fixedNow,
	}
}

// requireKind asserts err wraps kind and carries the given client message.
func requireKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	if message != "" {
		msg, ok := domain.SafeMessage(err)
		require.True(t, ok, "expected a client-safe message on %v", err)
		assert.Equal(t, message, msg)
	}
}

func fieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}
