package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"missing", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"text", "abc", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tc.value)
			id, err := getPathID(req, "id")
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty", "", "Request body is required"},
		{"malformed", "{not json", "Invalid request format"},
		{"too large", `{"name":"` + strings.Repeat("x", 2<<20) + `"}`, "Request body is too large"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst service.TagRequest
			err := decodeBody(httptest.NewRecorder(), req, &dst)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrBadRequest))
			msg, _ := domain.SafeMessage(err)
			assert.Equal(t, tc.message, msg)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"golang"}`))
	var dst service.TagRequest
	require.NoError(t, decodeBody(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "golang", dst.Name)
}

func TestParsePostFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/posts?authorId=3&tagId=7&published=true", nil)
	filter, err := parsePostFilter(req)
	require.NoError(t, err)
	require.NotNil(t, filter.AuthorID)
	require.NotNil(t, filter.TagID)
	require.NotNil(t, filter.Published)
	assert.Equal(t, int64(3), *filter.AuthorID)
	assert.Equal(t, int64(7), *filter.TagID)
	assert.Nil(t, filter.CategoryID)
	assert.True(t, *filter.Published)

	empty, err := parsePostFilter(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	assert.Nil(t, empty.AuthorID)
	assert.Nil(t, empty.Published)

	_, err = parsePostFilter(httptest.NewRequest(http.MethodGet, "/api/posts?categoryId=x&published=maybe", nil))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a positive integer", ve.Fields["categoryId"])
	assert.Equal(t, "must be true or false", ve.Fields["published"])
}
