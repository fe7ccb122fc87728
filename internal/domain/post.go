package domain

import "time"

// Post is a blog entry. PublishedAt is non-nil exactly when Published is
// true; use Publish, Unpublish or SetPublished to keep the two in step.
type Post struct {
	ID          int64
	Title       string
	Slug        string
	Content     string
	Published   bool
	PublishedAt *time.Time
	AuthorID    int64
	CategoryID  int64
	TagIDs      []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Publish moves a draft to published, stamping PublishedAt with now.
// Publishing an already published post keeps the original timestamp.
// It reports whether the state changed.
func (p *Post) Publish(now time.Time) bool {
	if p.Published && p.PublishedAt != nil {
		return false
	}
	t := now.UTC()
	p.Published = true
	p.PublishedAt = &t
	return true
}

// Unpublish moves a post back to draft and clears PublishedAt.
// It reports whether the state changed.
func (p *Post) Unpublish() bool {
	changed := p.Published || p.PublishedAt != nil
	p.Published = false
	p.PublishedAt = nil
	return changed
}

// SetPublished applies a requested publication flag.
func (p *Post) SetPublished(published bool, now time.Time) bool {
	if published {
		return p.Publish(now)
	}
	return p.Unpublish()
}

// HasTag reports whether the post is linked to tagID.
func (p *Post) HasTag(tagID int64) bool {
	for _, id := range p.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}
