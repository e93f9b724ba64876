package catalog

import (
	"sort"
	"strings"

	"github.com/yeai-tech/catalog-api/internal/models"
)

// Sort keys accepted from callers. Anything else falls back to the default
// view-count ordering.
var validSortColumns = map[string]bool{
	"post_title":    true,
	"post_category": true,
	"post_price":    true,
	"post_view":     true,
	"created_at":    true,
}

// Page is one page of a catalog listing plus the pre-pagination total.
type Page struct {
	Posts []models.Post
	Total int
}

// BuildPage dedups, relabels, sorts, and paginates the materialized result
// set. For the Freebies virtual category the input is the union of the
// literal-category rows and the price-tier rows, so pagination and the total
// count are only correct after deduplication, which is why the engine works
// on the full set rather than pushing LIMIT/OFFSET into SQL.
func BuildPage(posts []models.Post, filter Filter) Page {
	filter.Normalize()

	if filter.Freebies() {
		posts = relabelFreebies(dedupe(posts))
	}

	sortPosts(posts, filter.SortBy, filter.SortOrder)

	total := len(posts)
	start := filter.Offset * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return Page{Posts: posts[start:end], Total: total}
}

// dedupe keeps the first occurrence of each post id, preserving input order.
func dedupe(posts []models.Post) []models.Post {
	seen := make(map[string]bool, len(posts))
	out := posts[:0:0]
	for _, p := range posts {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// relabelFreebies rewrites the category of price-matched posts so the merged
// set presents uniformly as Freebies.
func relabelFreebies(posts []models.Post) []models.Post {
	for i := range posts {
		posts[i].Category = models.FreebiesCategory
	}
	return posts
}

// sortPosts orders the result set deterministically. The default is
// view-count descending; ties always break by creation time ascending then
// id, so repeated paginated requests see a stable order even as counts move
// between requests.
func sortPosts(posts []models.Post, sortBy, sortOrder string) {
	if !validSortColumns[sortBy] {
		sortBy = "post_view"
	}
	asc := strings.EqualFold(sortOrder, "asc")
	if sortBy == "post_view" && sortOrder == "" {
		asc = false
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := &posts[i], &posts[j]
		if c := comparePosts(a, b, sortBy); c != 0 {
			if asc {
				return c < 0
			}
			return c > 0
		}
		return tieBreak(a, b)
	})
}

func comparePosts(a, b *models.Post, sortBy string) int {
	switch sortBy {
	case "post_title":
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case "post_category":
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	case "post_price":
		return strings.Compare(a.Price, b.Price)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	default: // post_view
		switch {
		case a.Views < b.Views:
			return -1
		case a.Views > b.Views:
			return 1
		}
		return 0
	}
}

// tieBreak is direction-independent: the secondary key keeps pagination
// stable regardless of the requested sort order.
func tieBreak(a, b *models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
