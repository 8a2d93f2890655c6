package models

import (
	"time"

	"github.com/google/uuid"
)

// Post carries a snapshot of the author's name and avatar taken at
// creation time. The snapshot is intentionally stale: renaming the
// author or changing their avatar does not rewrite existing posts.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like records a single user's like. A user appears at most once in a
// post's like sequence.
type Like struct {
	UserID uuid.UUID `json:"user"`
}

// Comment is embedded in its post. Name and Avatar are the same kind of
// author snapshot a Post carries.
type Comment struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}
