// Package moderation implements the two-stage submission workflow: user
// submissions land pending, an admin decision promotes them into the public
// catalog or finalizes them as declined.
package moderation

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/metadata"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/notifier"
)

// SubmissionStore is the persistence surface the workflow needs.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	Decide(ctx context.Context, id, decision string) (*models.Submission, error)
}

// AssetStore receives the submission icon before the record is persisted.
type AssetStore interface {
	Save(kind, id string, data []byte) error
}

// Prefiller supplies page metadata for blank submission fields. Optional.
type Prefiller interface {
	Extract(ctx context.Context, pageURL string) (*metadata.PageMetadata, error)
}

// SubmitRequest carries the user-proposed fields plus the optional embedded
// icon as a base64 payload (with or without a data-URI prefix).
type SubmitRequest struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Title       string `json:"post_title"`
	Link        string `json:"post_link"`
	Category    string `json:"post_category"`
	Price       string `json:"post_price"`
	Description string `json:"post_description"`
	Image       string `json:"post_image"`
}

type Service struct {
	subs      SubmissionStore
	assets    AssetStore
	notifier  *notifier.Notifier
	prefiller Prefiller
	logger    logger.Logger
}

func NewService(
	subs SubmissionStore,
	assetStore AssetStore,
	mailer *notifier.Notifier,
	prefiller Prefiller,
	log logger.Logger,
) *Service {
	return &Service{
		subs:      subs,
		assets:    assetStore,
		notifier:  mailer,
		prefiller: prefiller,
		logger:    log,
	}
}

// Submit validates the payload, stores the embedded icon under the new
// submission id, persists the pending record, and fires the two
// notification mails as best-effort background tasks. The icon is stored
// before the record so a later approval can rely on the asset already
// sitting at its predictable location; an asset failure therefore fails the
// whole submission instead of leaving a record without its icon.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Submission, error) {
	sub := &models.Submission{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Email:       req.Email,
		Title:       strings.TrimSpace(req.Title),
		Link:        strings.TrimSpace(req.Link),
		Category:    strings.TrimSpace(req.Category),
		Price:       strings.TrimSpace(req.Price),
		Description: strings.TrimSpace(req.Description),
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	s.prefill(ctx, sub)

	if req.Image != "" {
		icon, err := decodeImagePayload(req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: post_image is not valid base64", models.ErrValidation)
		}
		if err := s.assets.Save(assets.KindIcon, sub.ID, icon); err != nil {
			return nil, fmt.Errorf("store submission icon: %w", err)
		}
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.logger.Info("Submission received",
		logger.String("submission_id", sub.ID),
		logger.String("post_title", sub.Title),
		logger.String("post_category", sub.Category),
	)

	s.notifier.NotifySubmissionAsync(sub)

	return sub, nil
}

// Decide applies an admin decision. All state rules live in the store's
// transactional Decide; this layer adds logging only.
func (s *Service) Decide(ctx context.Context, id, decision string) (*models.Submission, error) {
	sub, err := s.subs.Decide(ctx, id, decision)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submission decided",
		logger.String("submission_id", id),
		logger.String("status", sub.Status),
	)

	return sub, nil
}

// prefill fills a blank description from the submitted page's metadata.
// Strictly best-effort: an unreachable or slow page changes nothing.
func (s *Service) prefill(ctx context.Context, sub *models.Submission) {
	if s.prefiller == nil || sub.Description != "" {
		return
	}

	meta, err := s.prefiller.Extract(ctx, sub.Link)
	if err != nil {
		s.logger.Debug("metadata prefill skipped",
			logger.String("post_link", sub.Link),
			logger.Error(err),
		)
		return
	}
	sub.Description = meta.Description
}

// decodeImagePayload strips an optional data-URI prefix
// ("data:image/png;base64,") and decodes the remainder.
func decodeImagePayload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(payload)
}
