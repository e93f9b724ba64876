package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/catalog"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

type CategoryHandler struct {
	posts  *repository.PostRepository
	news   *repository.NewsRepository
	logger logger.Logger
}

func NewCategoryHandler(posts *repository.PostRepository, news *repository.NewsRepository, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		posts:  posts,
		news:   news,
		logger: log,
	}
}

// List serves GET /allCategories. The type query selects the tools or the
// news category set; a search term restricts and re-ranks by match
// position. Pagination applies only when the caller asks for it; the
// default response is the full distinct set, which is small.
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []string
	var err error

	switch c.Query("type") {
	case "news", "newscategories":
		categories, err = h.news.DistinctCategories(c.Request.Context())
	default:
		categories, err = h.posts.DistinctCategories(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list categories", logger.Error(err))
		respondError(c, err, "Error fetching categories")
		return
	}

	categories = catalog.FilterCategories(categories, c.Query("searchTerm"))

	if !paginationRequested(c) {
		c.JSON(http.StatusOK, categories)
		return
	}

	filter := parseFilter(c)
	page, total := catalog.PaginateCategories(categories, filter)
	c.JSON(http.StatusOK, gin.H{
		"categories":      page,
		"totalCategories": total,
	})
}

func paginationRequested(c *gin.Context) bool {
	return c.Query("limit") != "" || c.Query("page") != "" || c.Query("pageSize") != ""
}
