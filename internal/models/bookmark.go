package models

import "time"

// Bookmark is a single user→post association. The (UserID, PostID) pair is
// unique; the relation has no lifecycle beyond insert and delete.
type Bookmark struct {
	UserID    string    `json:"user_id" db:"user_id"`
	PostID    string    `json:"post_id" db:"post_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
