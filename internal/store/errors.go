package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrReferenced is returned when a delete or insert violates a foreign
	// key: the row is still referenced, or a referenced row is missing.
	ErrReferenced = errors.New("entity referenced")

	// ErrInvalidEntity is returned when a row fails a CHECK or NOT NULL
	// constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrTagNotFound      = fmt.Errorf("%w: tag", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("%w: post", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("%w: comment", ErrNotFound)

	ErrUsernameExists     = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists        = fmt.Errorf("%w: email", ErrDuplicate)
	ErrCategoryNameExists = fmt.Errorf("%w: category name", ErrDuplicate)
	ErrTagNameExists      = fmt.Errorf("%w: tag name", ErrDuplicate)
	ErrSlugExists         = fmt.Errorf("%w: slug", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
