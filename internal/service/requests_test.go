package service_test

import (
	"testing"

	"github.com/phrazzld/quill-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRequestValidation(t *testing.T) {
	str := func(s string) *string { return &s }
	id := func(i int64) *int64 { return &i }

	tests := []struct {
		name   string
		errs   map[string]string
		expect map[string]string
	}{
		{
			name:   "valid register",
			errs:   service.RegisterRequest{Username: "alice1", Email: "a@b.co", Password: "secret"}.Validate(),
			expect: map[string]string{},
		},
		{
			name: "username too long",
			errs: service.RegisterRequest{Username: "abcdefghijklmnopqrstu", Email: "a@b.co", Password: "secret"}.Validate(),
			expect: map[string]string{
				"username": "Username must be between 5 and 20 characters",
			},
		},
		{
			name: "whitespace category name",
			errs: service.CategoryRequest{Name: "     "}.Validate(),
			expect: map[string]string{
				"name": "Category name is required",
			},
		},
		{
			name:   "empty partial category update",
			errs:   service.CategoryUpdateRequest{}.Validate(),
			expect: map[string]string{},
		},
		{
			name: "blank name in category update",
			errs: service.CategoryUpdateRequest{Name: str("")}.Validate(),
			expect: map[string]string{
				"name": "Category name must be between 3 and 50 characters",
			},
		},
		{
			name: "post missing everything",
			errs: service.PostCreateRequest{}.Validate(),
			expect: map[string]string{
				"title":      "Title is required",
				"slug":       "Slug is required",
				"content":    "Content is required",
				"categoryId": "Category is required",
			},
		},
		{
			name: "post with a non-positive tag",
			errs: service.PostCreateRequest{
				Title:      "Valid title",
				Slug:       "valid-slug",
				Content:    longContent,
				CategoryID: 1,
				TagIDs:     []int64{3, 0},
			}.Validate(),
			expect: map[string]string{
				"tagIds[1]": "must be greater than 0",
			},
		},
		{
			name: "post update short title and bad category",
			errs: service.PostUpdateRequest{Title: str("Hey"), CategoryID: id(0)}.Validate(),
			expect: map[string]string{
				"title":      "Title must be between 5 and 200 characters",
				"categoryId": "Category is required",
			},
		},
		{
			name: "user update bad role",
			errs: service.UserUpdateRequest{Role: str("OWNER")}.Validate(),
			expect: map[string]string{
				"role": "Role must be USER or ADMIN",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.errs)
		})
	}
}
