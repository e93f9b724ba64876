// Package catalog implements the query engine for catalog listings:
// filter normalization, the Freebies virtual-category merge, deterministic
// sorting, and pagination over the merged result set.
package catalog

import "strings"

const (
	// FreebiesParam is the query value that triggers the virtual-category
	// merge. Matching is case-insensitive.
	FreebiesParam = "freebies"

	defaultLimit = 10
	maxLimit     = 100
)

// Filter holds the normalized listing parameters. Callers address pages
// either with Offset/Limit (zero-based page index and page size) or with
// Page/PageSize (1-based); Normalize collapses both onto Offset/Limit.
type Filter struct {
	Category   string
	SearchTerm string
	SortBy     string
	SortOrder  string
	Price      string

	Offset int // zero-based page index
	Limit  int // page size

	Page     int // 1-based page number, alternative addressing
	PageSize int
}

// Normalize resolves the two pagination addressing schemes and clamps the
// page size. Page/PageSize wins when set, matching how the two caller
// populations pass parameters.
func (f *Filter) Normalize() {
	if f.Page > 0 {
		f.Offset = f.Page - 1
		if f.PageSize > 0 {
			f.Limit = f.PageSize
		}
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
}

// Freebies reports whether the filter targets the virtual category.
func (f *Filter) Freebies() bool {
	return strings.EqualFold(f.Category, FreebiesParam)
}
