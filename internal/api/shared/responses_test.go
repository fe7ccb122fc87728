package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"name": "go"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"go"}`, rec.Body.String())
}

func TestRespondWithErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))

	RespondWithError(rec, req, http.StatusBadRequest, "Validation failed",
		WithFieldErrors(map[string]string{"name": "Category name is required"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "/api/categories", body.Path)
	assert.Equal(t, "trace-123", body.TraceID)
	assert.Equal(t, map[string]string{"name": "Category name is required"}, body.FieldErrors)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestRespondWithErrorOmitsEmptyFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, httptest.NewRequest(http.MethodGet, "/api/posts/9", nil), http.StatusNotFound, "Post not found with id: 9")

	assert.NotContains(t, rec.Body.String(), "fieldErrors")
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	rec := httptest.NewRecorder()

	cause := errors.New("query failed: postgres://quill:hunter2@db:5432/quill")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", cause)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.NotContains(t, buf.String(), "hunter2")
	assert.True(t, strings.Contains(buf.String(), `"level":"ERROR"`))
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"go"}`))
	require.NoError(t, DecodeJSON(rec, req, &dst))
	assert.Equal(t, "go", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(rec, req, &dst), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, DecodeJSON(rec, req, &dst))
}
