// Package service contains the application use cases of the blog: users,
// authentication, categories, tags, posts and comments. Services validate
// requests, resolve cross-entity references, enforce uniqueness and shape
// responses. They depend on the store interfaces, never on a concrete
// database.
//
// Every error a service returns wraps one of the domain error kinds
// (domain.ErrNotFound, domain.ErrConflict, domain.ErrValidation,
// domain.ErrBadRequest, domain.ErrUnauthorized) or is an unexpected
// infrastructure failure that the API layer reports as a 500.
package service
