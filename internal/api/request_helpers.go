package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/quill-api/internal/api/shared"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, invalidParam(paramName, raw, "is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(paramName, raw, "must be a positive integer")
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v. A malformed body is a bad
// request.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, shared.ErrEmptyBody):
			return &domain.ResourceError{Kind: domain.ErrBadRequest, Message: "Request body is required", Err: err}
		case errors.As(err, &maxErr):
			return &domain.ResourceError{Kind: domain.ErrBadRequest, Message: "Request body is too large", Err: err}
		default:
			return &domain.ResourceError{Kind: domain.ErrBadRequest, Message: "Invalid request format", Err: err}
		}
	}
	return nil
}

// parsePostFilter reads the optional authorId, categoryId, tagId and
// published query parameters. Malformed values are rejected rather than
// ignored.
func parsePostFilter(r *http.Request) (store.PostFilter, error) {
	q := r.URL.Query()
	var filter store.PostFilter
	fields := domain.FieldErrors{}

	for name, dst := range map[string]**int64{
		"authorId":   &filter.AuthorID,
		"categoryId": &filter.CategoryID,
		"tagId":      &filter.TagID,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			fields.Add(name, "must be a positive integer")
			continue
		}
		*dst = &id
	}

	if raw := q.Get("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			fields.Add("published", "must be true or false")
		} else {
			filter.Published = &published
		}
	}

	if err := fields.Err(); err != nil {
		return store.PostFilter{}, err
	}
	return filter, nil
}

func invalidParam(name, value, problem string) error {
	return &domain.ResourceError{
		Kind:    domain.ErrInvalidID,
		Message: fmt.Sprintf("Invalid %s: %q %s", name, value, problem),
	}
}
