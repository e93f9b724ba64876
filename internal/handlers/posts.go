package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/catalog"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

const defaultTopN = 10

// AssetResolver resolves asset kind/id pairs to public URLs.
type AssetResolver interface {
	Resolve(kind, id string) (string, error)
	Open(kind, id string) ([]byte, string, error)
}

type PostHandler struct {
	repo   *repository.PostRepository
	assets AssetResolver
	logger logger.Logger
}

func NewPostHandler(repo *repository.PostRepository, resolver AssetResolver, log logger.Logger) *PostHandler {
	return &PostHandler{
		repo:   repo,
		assets: resolver,
		logger: log,
	}
}

// ListByCategory serves GET /postsByCategory: the filtered, sorted,
// paginated catalog listing including the freebies virtual category.
func (h *PostHandler) ListByCategory(c *gin.Context) {
	filter := parseFilter(c)

	posts, err := h.repo.ListFiltered(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list posts",
			logger.String("category", filter.Category),
			logger.Error(err),
		)
		respondError(c, err, "Error fetching posts")
		return
	}

	page := catalog.BuildPage(posts, filter)

	if err := h.enrich(c.Request.Context(), page.Posts); err != nil {
		h.logger.Error("Failed to resolve post assets", logger.Error(err))
		respondError(c, err, "Error fetching image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      page.Posts,
		"totalPosts": page.Total,
	})
}

// GetByID serves GET /postById/:id.
func (h *PostHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	post, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			h.logger.Error("Failed to get post",
				logger.String("post_id", id),
				logger.Error(err),
			)
		}
		respondError(c, err, "Error fetching post")
		return
	}

	posts := []models.Post{*post}
	if err := h.enrich(c.Request.Context(), posts); err != nil {
		respondError(c, err, "Error fetching image")
		return
	}

	c.JSON(http.StatusOK, posts[0])
}

// Popular serves GET /popularPosts/:category: top-N by view count within a
// category, including the freebies virtual category.
func (h *PostHandler) Popular(c *gin.Context) {
	category := c.Param("category")
	limit := intQuery(c, "limit", defaultTopN)

	posts, err := h.repo.Popular(c.Request.Context(), category, limit)
	if err != nil {
		h.logger.Error("Failed to list popular posts",
			logger.String("category", category),
			logger.Error(err),
		)
		respondError(c, err, "Error fetching popular posts")
		return
	}

	if err := h.enrich(c.Request.Context(), posts); err != nil {
		respondError(c, err, "Error fetching image")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Trending serves GET /trendingPosts: top-N by view count, no category
// filter.
func (h *PostHandler) Trending(c *gin.Context) {
	limit := intQuery(c, "limit", defaultTopN)

	posts, err := h.repo.Trending(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list trending posts", logger.Error(err))
		respondError(c, err, "Error fetching trending posts")
		return
	}

	if err := h.enrich(c.Request.Context(), posts); err != nil {
		respondError(c, err, "Error fetching image")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Image serves GET /postImage/:id, the raw image passthrough.
func (h *PostHandler) Image(c *gin.Context) {
	id := c.Param("id")

	data, contentType, err := h.assets.Open(assets.KindImage, id)
	if err != nil {
		if errors.Is(err, models.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		h.logger.Error("Failed to read post image",
			logger.String("post_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching image"})
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// enrich attaches image and icon URLs to each post of a result page. A
// missing asset leaves the field empty; any other resolver failure aborts
// the whole page.
func (h *PostHandler) enrich(_ context.Context, posts []models.Post) error {
	for i := range posts {
		image, err := h.assets.Resolve(assets.KindImage, posts[i].ID)
		if err != nil && !errors.Is(err, models.ErrAssetNotFound) {
			return err
		}
		posts[i].Image = image

		icon, err := h.assets.Resolve(assets.KindIcon, posts[i].ID)
		if err != nil && !errors.Is(err, models.ErrAssetNotFound) {
			return err
		}
		posts[i].Icon = icon
	}
	return nil
}
