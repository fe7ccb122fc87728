package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// duplicateFields names the client-facing field for each store duplicate
// error.
var duplicateFields = map[error]string{
	store.ErrUsernameExists:     "Username",
	store.ErrEmailExists:        "Email",
	store.ErrCategoryNameExists: "Category name",
	store.ErrTagNameExists:      "Tag name",
	store.ErrSlugExists:         "Slug",
}

// conflictFromStore turns a unique violation raised by the store (the
// losing side of a check-then-act race) into the same conflict the
// up-front check would have produced. values supplies the offending value
// per duplicate error. It returns nil when err is not a duplicate.
func conflictFromStore(err error, values map[error]string) error {
	if !store.IsDuplicateError(err) {
		return nil
	}
	for target, field := range duplicateFields {
		if errors.Is(err, target) {
			return domain.NewConflictError(field, values[target])
		}
	}
	return domain.NewConflictErrorf(err, "Resource already exists")
}

// wrapUnexpected annotates an infrastructure failure.
func wrapUnexpected(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
