package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/domain"
)

// GenericErrorMessage is returned for every failure without a client-safe
// message.
const GenericErrorMessage = "An unexpected error occurred. Please try again later."

// MapErrorToStatusCode maps service errors to HTTP status codes by their
// domain kind. Anything unrecognised is an internal error.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err. Only
// errors built by the domain constructors carry one; everything else gets
// GenericErrorMessage so internal detail never leaks.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return GenericErrorMessage
	}
	if MapErrorToStatusCode(err) == http.StatusInternalServerError {
		return GenericErrorMessage
	}
	if msg, ok := domain.SafeMessage(err); ok {
		return msg
	}
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	default:
		return GenericErrorMessage
	}
}

// HandleAPIError writes the error envelope for err. Validation failures
// include their field errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		opts = append(opts, shared.WithFieldErrors(ve.Fields))
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
