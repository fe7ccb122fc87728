package store

import "github.com/phrazzld/quill-api/internal/domain"

// PostFilter holds the optional criteria accepted by the post listing
// endpoint. A nil field places no constraint.
type PostFilter struct {
	AuthorID   *int64
	CategoryID *int64
	TagID      *int64
	Published  *bool
}

// HasFilters reports whether any criterion is set.
func (f PostFilter) HasFilters() bool {
	return f.AuthorID != nil || f.CategoryID != nil || f.TagID != nil || f.Published != nil
}

// Clause is a single equality test in a PostPredicate.
type Clause struct {
	Field ClauseField
	Value any
}

// ClauseField names the post attribute a Clause tests.
type ClauseField string

const (
	FieldAuthorID   ClauseField = "author_id"
	FieldCategoryID ClauseField = "category_id"
	FieldPublished  ClauseField = "published"
	// FieldTagID matches when any of the post's tags has the given id.
	FieldTagID ClauseField = "tag_id"
)

// PostPredicate is the conjunction of its clauses.
type PostPredicate struct {
	Clauses []Clause
}

// BuildPostFilter turns f into a predicate with one equality clause per set
// field, AND-ed together. It returns nil when f has no criteria.
func BuildPostFilter(f PostFilter) *PostPredicate {
	if !f.HasFilters() {
		return nil
	}
	pred := &PostPredicate{}
	if f.AuthorID != nil {
		pred.Clauses = append(pred.Clauses, Clause{Field: FieldAuthorID, Value: *f.AuthorID})
	}
	if f.CategoryID != nil {
		pred.Clauses = append(pred.Clauses, Clause{Field: FieldCategoryID, Value: *f.CategoryID})
	}
	if f.TagID != nil {
		pred.Clauses = append(pred.Clauses, Clause{Field: FieldTagID, Value: *f.TagID})
	}
	if f.Published != nil {
		pred.Clauses = append(pred.Clauses, Clause{Field: FieldPublished, Value: *f.Published})
	}
	return pred
}

// Matches evaluates the predicate against p. A nil predicate matches
// everything.
func (pred *PostPredicate) Matches(p *domain.Post) bool {
	if pred == nil {
		return true
	}
	for _, c := range pred.Clauses {
		switch c.Field {
		case FieldAuthorID:
			if p.AuthorID != c.Value.(int64) {
				return false
			}
		case FieldCategoryID:
			if p.CategoryID != c.Value.(int64) {
				return false
			}
		case FieldTagID:
			if !p.HasTag(c.Value.(int64)) {
				return false
			}
		case FieldPublished:
			if p.Published != c.Value.(bool) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
