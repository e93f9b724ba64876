package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/repository"
	"github.com/yeai-tech/catalog-api/internal/viewguard"
)

type ViewHandler struct {
	repo   *repository.PostRepository
	guard  viewguard.Guard
	logger logger.Logger
}

func NewViewHandler(repo *repository.PostRepository, guard viewguard.Guard, log logger.Logger) *ViewHandler {
	return &ViewHandler{
		repo:   repo,
		guard:  guard,
		logger: log,
	}
}

type registerViewRequest struct {
	PostID     string `json:"postId"`
	SessionKey string `json:"sessionKey"`
}

// Register serves POST/PUT /updatePostView. The first view of a post from a
// session increments the stored counter by exactly one; repeats within the
// guard TTL return the current count unchanged. The caller never supplies
// the count; the increment is a single atomic statement against the store.
func (h *ViewHandler) Register(c *gin.Context) {
	var req registerViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.PostID == "" {
		respondError(c, fmt.Errorf("%w: postId is required", models.ErrValidation), "")
		return
	}

	sessionKey := req.SessionKey
	if sessionKey == "" {
		sessionKey = c.GetHeader("X-Session-Key")
	}
	if sessionKey == "" {
		// Last resort: approximate the browsing session by client address.
		sessionKey = c.ClientIP()
	}

	ctx := c.Request.Context()

	first, err := h.guard.FirstView(ctx, sessionKey, req.PostID)
	if err != nil {
		h.logger.Error("View-guard check failed",
			logger.String("post_id", req.PostID),
			logger.Error(err),
		)
		respondError(c, err, "Error updating post view")
		return
	}

	var views int64
	if first {
		views, err = h.repo.IncrementView(ctx, req.PostID)
		if err != nil {
			// Back out the guard mark so a retry can still count.
			h.guard.Release(ctx, sessionKey, req.PostID)
			respondError(c, err, "Error updating post view")
			return
		}
	} else {
		views, err = h.repo.Views(ctx, req.PostID)
		if err != nil {
			respondError(c, err, "Error updating post view")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"post_view": views,
		"counted":   first,
	})
}
