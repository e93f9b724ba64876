package models

import (
	"strings"
	"time"
)

// Price tiers that place a post in the virtual Freebies category regardless
// of its stored category.
const (
	PriceFree     = "Free"
	PriceFreemium = "Freemium"

	// FreebiesCategory is the virtual category name. Posts matching it by
	// price are relabeled to this value in query results.
	FreebiesCategory = "Freebies"
)

// Post is a public catalog entry (a "tool").
type Post struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"post_title" db:"post_title"`
	Category    string    `json:"post_category" db:"post_category"`
	Price       string    `json:"post_price" db:"post_price"`
	Description string    `json:"post_description" db:"post_description"`
	Link        string    `json:"post_link" db:"post_link"`
	Views       int64     `json:"post_view" db:"post_view"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Resolved asset URLs, attached per result page. Empty when the asset
	// does not exist.
	Image string `json:"image,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// IsFreebie reports whether the post belongs to the virtual Freebies
// category, either by price tier or by literal category.
func (p *Post) IsFreebie() bool {
	if strings.EqualFold(p.Category, FreebiesCategory) {
		return true
	}
	return p.Price == PriceFree || p.Price == PriceFreemium
}
