// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error returned by the service layer wraps exactly one
// of these, which the API layer maps to an HTTP status.
var (
	// ErrValidation is returned when a request fails field validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would violate a uniqueness or
	// referential constraint.
	ErrConflict = errors.New("conflict")

	// ErrBadRequest is returned for business-rule violations that are the
	// caller's fault, such as creating a comment without a principal.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the principal lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// ResourceError carries a client-safe message together with its kind and an
// optional underlying cause.
type ResourceError struct {
	Kind    error
	Message string
	Err     error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ResourceError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewNotFoundError builds "<Resource> not found with <field>: <value>".
func NewNotFoundError(resource, field string, value any) error {
	return &ResourceError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("%s not found with %s: %v", resource, field, value),
	}
}

// NewConflictError builds "<Field> already exists: <value>".
func NewConflictError(field string, value any) error {
	return &ResourceError{
		Kind:    ErrConflict,
		Message: fmt.Sprintf("%s already exists: %v", field, value),
	}
}

// NewConflictErrorf builds a conflict with a free-form message wrapping cause.
func NewConflictErrorf(cause error, format string, args ...any) error {
	return &ResourceError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...), Err: cause}
}

func NewBadRequestError(message string) error {
	return &ResourceError{Kind: ErrBadRequest, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &ResourceError{Kind: ErrUnauthorized, Message: message}
}

func NewForbiddenError(message string) error {
	return &ResourceError{Kind: ErrForbidden, Message: message}
}

// SafeMessage returns the client-facing message of a ResourceError or
// ValidationError in err's chain.
func SafeMessage(err error) (string, bool) {
	var re *ResourceError
	if errors.As(err, &re) {
		return re.Message, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message(), true
	}
	return "", false
}

// FieldErrors maps a request field name to a human readable problem.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Err returns a *ValidationError when f is non-empty, nil otherwise.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError reports one or more invalid request fields.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message()
}

// Message joins the field errors in a stable order.
func (e *ValidationError) Message() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
