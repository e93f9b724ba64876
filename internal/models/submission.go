package models

import (
	"fmt"
	"strings"
	"time"
)

// Submission statuses. A submission starts pending and ends in exactly one
// terminal state; there is no transition out of approved or declined.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// Submission is a user-proposed catalog entry awaiting moderation. Its ID is
// minted at submission time and reused for the promoted Post on approval.
type Submission struct {
	ID          string     `json:"post_id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Email       string     `json:"email" db:"email"`
	Title       string     `json:"post_title" db:"post_title"`
	Link        string     `json:"post_link" db:"post_link"`
	Category    string     `json:"post_category" db:"post_category"`
	Price       string     `json:"post_price" db:"post_price"`
	Description string     `json:"post_description" db:"post_description"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty" db:"decided_at"`
}

// Terminal reports whether the submission has been decided.
func (s *Submission) Terminal() bool {
	return s.Status == StatusApproved || s.Status == StatusDeclined
}

// Validate checks the required submission fields.
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: post_title is required", ErrValidation)
	}
	if strings.TrimSpace(s.Link) == "" {
		return fmt.Errorf("%w: post_link is required", ErrValidation)
	}
	if !strings.HasPrefix(s.Link, "http://") && !strings.HasPrefix(s.Link, "https://") {
		return fmt.Errorf("%w: post_link must start with http:// or https://", ErrValidation)
	}
	if strings.TrimSpace(s.Category) == "" {
		return fmt.Errorf("%w: post_category is required", ErrValidation)
	}
	return nil
}

// ValidDecision reports whether the given decision value names a terminal
// status.
func ValidDecision(decision string) bool {
	return decision == StatusApproved || decision == StatusDeclined
}

// Promote copies the submission's proposed fields into a public Post. The
// identifier is reused and the view counter starts at zero.
func (s *Submission) Promote() *Post {
	return &Post{
		ID:          s.ID,
		Title:       s.Title,
		Category:    s.Category,
		Price:       s.Price,
		Description: s.Description,
		Link:        s.Link,
		Views:       0,
		CreatedAt:   time.Now(),
	}
}
