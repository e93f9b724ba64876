package models

import "time"

// NewsPost is a news catalog entry. Same listing shape as Post minus the
// price and view-count mechanics.
type NewsPost struct {
	ID          string    `json:"post_id" db:"post_id"`
	Title       string    `json:"post_title" db:"post_title"`
	Category    string    `json:"post_category" db:"post_category"`
	Description string    `json:"post_description" db:"post_description"`
	Link        string    `json:"post_link" db:"post_link"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Image string `json:"image,omitempty"`
}
