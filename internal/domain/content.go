package domain

import "time"

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment belongs to one post and one author. Both references must resolve
// when the comment is created.
type Comment struct {
	ID        int64
	Content   string
	PostID    int64
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
