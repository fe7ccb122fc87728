package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/quill-api/internal/api/metrics"
	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
)

// AuthRecorder receives the outcome of every register and login attempt.
type AuthRecorder interface {
	AuthAttempt(action, result string)
}

type noopAuthRecorder struct{}

func (noopAuthRecorder) AuthAttempt(string, string) {}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth     service.AuthService
	recorder AuthRecorder
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. recorder may be nil.
func NewAuthHandler(auth service.AuthService, recorder AuthRecorder, logger *slog.Logger) *AuthHandler {
	if recorder == nil {
		recorder = noopAuthRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:     auth,
		recorder: recorder,
		logger:   logger.With("handler", "auth"),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.recorder.AuthAttempt(metrics.ActionRegister, metrics.ResultRejected)
		HandleAPIError(w, r, err)
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.recorder.AuthAttempt(metrics.ActionRegister, authResult(err))
		HandleAPIError(w, r, err)
		return
	}

	h.recorder.AuthAttempt(metrics.ActionRegister, metrics.ResultSuccess)
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.recorder.AuthAttempt(metrics.ActionLogin, metrics.ResultRejected)
		HandleAPIError(w, r, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.recorder.AuthAttempt(metrics.ActionLogin, authResult(err))
		if errors.Is(err, domain.ErrUnauthorized) {
			h.logger.Info("login failed", "username", req.Username)
		}
		HandleAPIError(w, r, err)
		return
	}

	h.recorder.AuthAttempt(metrics.ActionLogin, metrics.ResultSuccess)
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func authResult(err error) string {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrBadRequest) {
		return metrics.ResultRejected
	}
	return metrics.ResultFailure
}
