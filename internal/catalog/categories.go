package catalog

import (
	"sort"
	"strings"
)

// FilterCategories restricts and orders the distinct category set. Without a
// search term categories come back case-insensitively ascending. With a term,
// non-matching categories are excluded outright and matches are ranked by
// match position (earlier match first), then name.
func FilterCategories(categories []string, searchTerm string) []string {
	out := make([]string, 0, len(categories))
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	if term == "" {
		out = append(out, categories...)
		sort.Slice(out, func(i, j int) bool {
			return strings.ToLower(out[i]) < strings.ToLower(out[j])
		})
		return out
	}

	pos := make(map[string]int, len(categories))
	for _, c := range categories {
		idx := strings.Index(strings.ToLower(c), term)
		if idx < 0 {
			continue
		}
		pos[c] = idx
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if pos[out[i]] != pos[out[j]] {
			return pos[out[i]] < pos[out[j]]
		}
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// PaginateCategories applies the shared pagination addressing to a category
// list, returning the page and the pre-pagination total.
func PaginateCategories(categories []string, filter Filter) ([]string, int) {
	filter.Normalize()

	total := len(categories)
	start := filter.Offset * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return categories[start:end], total
}
