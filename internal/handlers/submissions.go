package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/moderation"
	"github.com/yeai-tech/catalog-api/internal/notifier"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

type SubmissionHandler struct {
	service     *moderation.Service
	submissions *repository.SubmissionRepository
	notifier    *notifier.Notifier
	assets      AssetResolver
	logger      logger.Logger
}

func NewSubmissionHandler(
	service *moderation.Service,
	submissions *repository.SubmissionRepository,
	mailer *notifier.Notifier,
	resolver AssetResolver,
	log logger.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		service:     service,
		submissions: submissions,
		notifier:    mailer,
		assets:      resolver,
		logger:      log,
	}
}

// Submit serves POST /send-email: validates and persists a pending
// submission, then fires the confirmation and review mails in the
// background.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req moderation.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		if !errors.Is(err, models.ErrValidation) {
			h.logger.Error("Failed to accept submission",
				logger.String("post_title", req.Title),
				logger.Error(err),
			)
		}
		respondError(c, err, "Error submitting tool")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission received",
		"submission": sub,
	})
}

// Decide serves GET /update-tool-status. The admin reaches this endpoint by
// clicking a link in the review mail, so parameters arrive as query strings
// and a browser-friendly plain-text body is returned on success.
func (h *SubmissionHandler) Decide(c *gin.Context) {
	id := c.Query("toolId")
	decision := c.Query("pending")
	if id == "" || decision == "" {
		respondError(c,
			fmt.Errorf("%w: toolId and pending are required", models.ErrValidation), "")
		return
	}

	sub, err := h.service.Decide(c.Request.Context(), id, decision)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrConflict) &&
			!errors.Is(err, models.ErrValidation) {
			h.logger.Error("Failed to decide submission",
				logger.String("submission_id", id),
				logger.String("decision", decision),
				logger.Error(err),
			)
		}
		respondError(c, err, "Error updating tool status")
		return
	}

	c.String(http.StatusOK, "Tool has been %s", sub.Status)
}

type reportIssueRequest struct {
	PostTitle string `json:"post_title"`
	Message   string `json:"message"`
	Email     string `json:"email"`
}

// ReportIssue serves POST /report-issue: relays a user's report about a
// post to the admin mailbox. Sending the mail is the whole operation, so a
// send failure is a failed request.
func (h *SubmissionHandler) ReportIssue(c *gin.Context) {
	var req reportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, fmt.Errorf("%w: message is required", models.ErrValidation), "")
		return
	}

	err := h.notifier.ReportIssue(c.Request.Context(), req.PostTitle, req.Message, req.Email)
	if err != nil {
		h.logger.Error("Failed to relay issue report",
			logger.String("post_title", req.PostTitle),
			logger.Error(err),
		)
		respondError(c, err, "Error sending report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report sent"})
}

// AddedPosts serves GET /added-posts/:userId: the user's own submissions
// in every state, newest first.
func (h *SubmissionHandler) AddedPosts(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		respondError(c, fmt.Errorf("%w: userId is required", models.ErrValidation), "")
		return
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 5)

	subs, total, err := h.submissions.ListByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list user submissions",
			logger.String("user_id", userID),
			logger.Error(err),
		)
		respondError(c, err, "Error fetching added posts")
		return
	}

	type addedPost struct {
		models.Submission
		Icon string `json:"post_icon,omitempty"`
	}

	enriched := make([]addedPost, 0, len(subs))
	for _, sub := range subs {
		icon, resolveErr := h.assets.Resolve(assets.KindIcon, sub.ID)
		if resolveErr != nil && !errors.Is(resolveErr, models.ErrAssetNotFound) {
			respondError(c, resolveErr, "Error fetching icon")
			return
		}
		enriched = append(enriched, addedPost{Submission: sub, Icon: icon})
	}

	c.JSON(http.StatusOK, gin.H{
		"addedPosts": enriched,
		"totalPosts": total,
		"totalPages": totalPages(total, pageSize),
	})
}
