package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

type BookmarkHandler struct {
	bookmarks   *repository.BookmarkRepository
	submissions *repository.SubmissionRepository
	assets      AssetResolver
	logger      logger.Logger
}

func NewBookmarkHandler(
	bookmarks *repository.BookmarkRepository,
	submissions *repository.SubmissionRepository,
	resolver AssetResolver,
	log logger.Logger,
) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks:   bookmarks,
		submissions: submissions,
		assets:      resolver,
		logger:      log,
	}
}

type bookmarkRequest struct {
	UserID string `json:"userId"`
	PostID string `json:"postId"`
}

func (r *bookmarkRequest) validate() error {
	if r.UserID == "" {
		return fmt.Errorf("%w: userId is required", models.ErrValidation)
	}
	if r.PostID == "" {
		return fmt.Errorf("%w: postId is required", models.ErrValidation)
	}
	return nil
}

// Toggle serves PUT /toggleBookmark.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err, "")
		return
	}

	bookmarked, err := h.bookmarks.Toggle(c.Request.Context(), req.UserID, req.PostID)
	if err != nil {
		h.logger.Error("Failed to toggle bookmark",
			logger.String("user_id", req.UserID),
			logger.String("post_id", req.PostID),
			logger.Error(err),
		)
		respondError(c, err, "Error toggling bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// Add serves PUT /updateBookmark.
func (h *BookmarkHandler) Add(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.bookmarks.Add(c.Request.Context(), req.UserID, req.PostID); err != nil {
		h.logger.Error("Failed to add bookmark",
			logger.String("user_id", req.UserID),
			logger.Error(err),
		)
		respondError(c, err, "Error adding bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

// Remove serves DELETE /removeBookmark.
func (h *BookmarkHandler) Remove(c *gin.Context) {
	req := bookmarkRequest{
		UserID: c.Query("userId"),
		PostID: c.Query("postId"),
	}
	if req.UserID == "" || req.PostID == "" {
		// Some clients send the pair in the body instead.
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	if err := req.validate(); err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.bookmarks.Remove(c.Request.Context(), req.UserID, req.PostID); err != nil {
		h.logger.Error("Failed to remove bookmark",
			logger.String("user_id", req.UserID),
			logger.Error(err),
		)
		respondError(c, err, "Error removing bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}

// ListIDs serves GET /getBookmarks: the user's bookmarked post ids plus the
// ids of their own approved submissions, which the frontend renders as a
// separate "added by you" marker.
func (h *BookmarkHandler) ListIDs(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondError(c, fmt.Errorf("%w: userId is required", models.ErrValidation), "")
		return
	}

	ctx := c.Request.Context()

	bookmarked, err := h.bookmarks.ListIDs(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list bookmark ids",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		respondError(c, err, "Internal server error")
		return
	}

	added, err := h.submissions.ApprovedIDsByUser(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list approved submission ids",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		respondError(c, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarkedPostIds": bookmarked,
		"userAddedPostIds":  added,
	})
}

// ListPosts serves GET /getBookmarkPosts and /bookmarked-posts/:userId:
// bookmarked ids resolved to full post records, paginated, icon-enriched.
func (h *BookmarkHandler) ListPosts(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		userID = c.Query("userId")
	}
	if userID == "" {
		respondError(c, fmt.Errorf("%w: userId is required", models.ErrValidation), "")
		return
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 5)

	posts, total, err := h.bookmarks.ListPosts(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list bookmarked posts",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		respondError(c, err, "Error fetching bookmarked posts")
		return
	}

	// Icon enrichment only; a missing icon is expected and non-fatal.
	for i := range posts {
		icon, resolveErr := h.assets.Resolve(assets.KindIcon, posts[i].ID)
		if resolveErr != nil && !errors.Is(resolveErr, models.ErrAssetNotFound) {
			respondError(c, resolveErr, "Error fetching icon")
			return
		}
		posts[i].Icon = icon
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarkedPosts": posts,
		"totalPosts":      total,
		"totalPages":      totalPages(total, pageSize),
	})
}

func totalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
