package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPublicationStateMachine(t *testing.T) {
	t.Parallel()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	p := &domain.Post{}
	assert.False(t, p.Published)
	assert.Nil(t, p.PublishedAt)

	assert.True(t, p.Publish(first))
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, first, *p.PublishedAt)

	// Publishing again keeps the original timestamp.
	assert.False(t, p.Publish(later))
	assert.Equal(t, first, *p.PublishedAt)

	assert.True(t, p.Unpublish())
	assert.False(t, p.Published)
	assert.Nil(t, p.PublishedAt)
	assert.False(t, p.Unpublish())

	assert.True(t, p.SetPublished(true, later))
	assert.Equal(t, later, *p.PublishedAt)
	assert.True(t, p.SetPublished(false, later))
	assert.Nil(t, p.PublishedAt)
}

func TestPostHasTag(t *testing.T) {
	t.Parallel()

	p := &domain.Post{TagIDs: []int64{2, 5}}
	assert.True(t, p.HasTag(5))
	assert.False(t, p.HasTag(3))
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := domain.PrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := domain.WithPrincipal(context.Background(), domain.Principal{
		UserID: 4, Username: "alice01", Role: domain.RoleAdmin,
	})
	p, ok := domain.PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(4), p.UserID)
	assert.True(t, p.IsAdmin())
	assert.True(t, domain.RoleUser.Valid())
	assert.False(t, domain.Role("ROOT").Valid())
}
