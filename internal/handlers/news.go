package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

type NewsHandler struct {
	repo   *repository.NewsRepository
	assets AssetResolver
	logger logger.Logger
}

func NewNewsHandler(repo *repository.NewsRepository, resolver AssetResolver, log logger.Logger) *NewsHandler {
	return &NewsHandler{
		repo:   repo,
		assets: resolver,
		logger: log,
	}
}

// ListByCategory serves GET /newsByCategory. News has no freebies merge and
// no price filter, so sorting happens in SQL and only the page window is
// cut here.
func (h *NewsHandler) ListByCategory(c *gin.Context) {
	filter := parseFilter(c)

	posts, err := h.repo.ListFiltered(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list news",
			logger.String("category", filter.Category),
			logger.Error(err),
		)
		respondError(c, err, "Error fetching news")
		return
	}

	page, total := repository.PaginateNews(posts, filter)

	for i := range page {
		image, resolveErr := h.assets.Resolve(assets.KindNewsImage, page[i].ID)
		if resolveErr != nil && !errors.Is(resolveErr, models.ErrAssetNotFound) {
			respondError(c, resolveErr, "Error fetching image")
			return
		}
		page[i].Image = image
	}

	c.JSON(http.StatusOK, gin.H{
		"news":       page,
		"totalPosts": total,
	})
}
