package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/quill-api/internal/api/metrics"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	RegisterFn func(ctx context.Context, req service.RegisterRequest) (*service.AuthResponse, error)
	LoginFn    func(ctx context.Context, req service.LoginRequest) (*service.AuthResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req service.RegisterRequest) (*service.AuthResponse, error) {
	return s.RegisterFn(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.AuthResponse, error) {
	return s.LoginFn(ctx, req)
}

type recordedAttempts []string

func (r *recordedAttempts) AuthAttempt(action, result string) {
	*r = append(*r, action+"/"+result)
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &stubAuthService{
		LoginFn: func(_ context.Context, req service.LoginRequest) (*service.AuthResponse, error) {
			if req.Password != "secret1" {
				return nil, domain.NewUnauthorizedError("Invalid username or password")
			}
			return &service.AuthResponse{Token: "tok", Message: "Login successful"}, nil
		},
	}
	var attempts recordedAttempts
	h := NewAuthHandler(svc, &attempts, nil)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice1","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp service.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice1","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, recordedAttempts{
		metrics.ActionLogin + "/" + metrics.ResultSuccess,
		metrics.ActionLogin + "/" + metrics.ResultFailure,
		metrics.ActionLogin + "/" + metrics.ResultRejected,
	}, attempts)
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := &stubAuthService{
		RegisterFn: func(_ context.Context, req service.RegisterRequest) (*service.AuthResponse, error) {
			if req.Username == "taken1" {
				return nil, domain.NewConflictError("Username", req.Username)
			}
			return &service.AuthResponse{Token: "tok", Message: "User registered successfully"}, nil
		},
	}
	h := NewAuthHandler(svc, nil, nil)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"newbie","email":"n@example.com","password":"secret1"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully")

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"taken1","email":"t@example.com","password":"secret1"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists: taken1")
}
