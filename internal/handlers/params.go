package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/catalog"
)

// parseFilter reads the listing parameters shared by the catalog endpoints.
// Both addressing schemes are accepted: offset/limit (zero-based page index
// and size) and page/pageSize (1-based); Normalize resolves the overlap.
func parseFilter(c *gin.Context) catalog.Filter {
	return catalog.Filter{
		Category:   c.Query("categoryName"),
		SearchTerm: c.Query("searchTerm"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Price:      c.Query("filterBy"),
		Offset:     intQuery(c, "offset", 0),
		Limit:      intQuery(c, "limit", 0),
		Page:       intQuery(c, "page", 0),
		PageSize:   intQuery(c, "pageSize", 0),
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
