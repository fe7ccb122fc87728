package store_test

import (
	"testing"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBuildPostFilterEmpty(t *testing.T) {
	t.Parallel()

	assert.False(t, store.PostFilter{}.HasFilters())
	pred := store.BuildPostFilter(store.PostFilter{})
	assert.Nil(t, pred)
	assert.True(t, pred.Matches(&domain.Post{ID: 1}), "nil predicate matches everything")
}

func TestBuildPostFilterClauses(t *testing.T) {
	t.Parallel()

	pred := store.BuildPostFilter(store.PostFilter{
		AuthorID:  ptr(int64(3)),
		TagID:     ptr(int64(9)),
		Published: ptr(true),
	})
	require.NotNil(t, pred)
	assert.Equal(t, []store.Clause{
		{Field: store.FieldAuthorID, Value: int64(3)},
		{Field: store.FieldTagID, Value: int64(9)},
		{Field: store.FieldPublished, Value: true},
	}, pred.Clauses)
}

func TestPostPredicateMatches(t *testing.T) {
	t.Parallel()

	posts := []*domain.Post{
		{ID: 1, AuthorID: 1, CategoryID: 10, TagIDs: []int64{100}, Published: true},
		{ID: 2, AuthorID: 1, CategoryID: 20, TagIDs: []int64{100, 200}},
		{ID: 3, AuthorID: 2, CategoryID: 10, Published: true},
	}

	tests := []struct {
		name   string
		filter store.PostFilter
		want   []int64
	}{
		{"no filter", store.PostFilter{}, []int64{1, 2, 3}},
		{"author", store.PostFilter{AuthorID: ptr(int64(1))}, []int64{1, 2}},
		{"category", store.PostFilter{CategoryID: ptr(int64(10))}, []int64{1, 3}},
		{"tag", store.PostFilter{TagID: ptr(int64(200))}, []int64{2}},
		{"published", store.PostFilter{Published: ptr(false)}, []int64{2}},
		{
			"author and published",
			store.PostFilter{AuthorID: ptr(int64(1)), Published: ptr(true)},
			[]int64{1},
		},
		{"no match", store.PostFilter{TagID: ptr(int64(999))}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pred := store.BuildPostFilter(tt.filter)
			var got []int64
			for _, p := range posts {
				if pred.Matches(p) {
					got = append(got, p.ID)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
