package moderation

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/metadata"
	"github.com/yeai-tech/catalog-api/internal/models"
)

type fakeSubmissionStore struct {
	created   []*models.Submission
	createErr error

	decided map[string]*models.Submission
}

func (f *fakeSubmissionStore) Create(_ context.Context, sub *models.Submission) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeSubmissionStore) Decide(_ context.Context, id, decision string) (*models.Submission, error) {
	sub, ok := f.decided[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if sub.Terminal() {
		if sub.Status == decision {
			return sub, nil
		}
		return nil, models.ErrConflict
	}
	sub.Status = decision
	return sub, nil
}

type fakeAssetStore struct {
	saved   map[string][]byte
	saveErr error
}

func (f *fakeAssetStore) Save(kind, id string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[kind+"/"+id] = data
	return nil
}

type fakePrefiller struct {
	meta *metadata.PageMetadata
	err  error
}

func (f *fakePrefiller) Extract(context.Context, string) (*metadata.PageMetadata, error) {
	return f.meta, f.err
}

func newService(subs *fakeSubmissionStore, assetStore *fakeAssetStore, prefiller Prefiller) *Service {
	return NewService(subs, assetStore, nil, prefiller, logger.NewNop())
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		UserID:   "user-1",
		Email:    "user@example.com",
		Title:    "Foo",
		Link:     "https://foo.example",
		Category: "AI",
		Price:    "Free",
	}
}

func TestSubmit_CreatesPendingSubmission(t *testing.T) {
	subs := &fakeSubmissionStore{}
	svc := newService(subs, &fakeAssetStore{}, nil)

	sub, err := svc.Submit(t.Context(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	require.Len(t, subs.created, 1)
	assert.Equal(t, sub.ID, subs.created[0].ID)
}

func TestSubmit_ValidatesRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitRequest)
	}{
		{"missing title", func(r *SubmitRequest) { r.Title = "" }},
		{"missing link", func(r *SubmitRequest) { r.Link = "" }},
		{"non-http link", func(r *SubmitRequest) { r.Link = "ftp://foo" }},
		{"missing category", func(r *SubmitRequest) { r.Category = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			svc := newService(&fakeSubmissionStore{}, &fakeAssetStore{}, nil)
			_, err := svc.Submit(t.Context(), req)
			assert.True(t, errors.Is(err, models.ErrValidation))
		})
	}
}

func TestSubmit_StoresIconBeforeRecord(t *testing.T) {
	subs := &fakeSubmissionStore{}
	assetStore := &fakeAssetStore{}
	svc := newService(subs, assetStore, nil)

	req := validRequest()
	req.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))

	sub, err := svc.Submit(t.Context(), req)
	require.NoError(t, err)

	assert.Equal(t, []byte("png"), assetStore.saved[assets.KindIcon+"/"+sub.ID])
}

func TestSubmit_AssetFailureFailsSubmission(t *testing.T) {
	subs := &fakeSubmissionStore{}
	assetStore := &fakeAssetStore{saveErr: errors.New("disk full")}
	svc := newService(subs, assetStore, nil)

	req := validRequest()
	req.Image = base64.StdEncoding.EncodeToString([]byte("png"))

	_, err := svc.Submit(t.Context(), req)
	require.Error(t, err)
	assert.Empty(t, subs.created, "no submission record may exist without its icon")
}

func TestSubmit_BadImagePayloadIsValidationError(t *testing.T) {
	svc := newService(&fakeSubmissionStore{}, &fakeAssetStore{}, nil)

	req := validRequest()
	req.Image = "%%% not base64 %%%"

	_, err := svc.Submit(t.Context(), req)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestSubmit_PrefillsBlankDescription(t *testing.T) {
	subs := &fakeSubmissionStore{}
	prefiller := &fakePrefiller{meta: &metadata.PageMetadata{Description: "From the page."}}
	svc := newService(subs, &fakeAssetStore{}, prefiller)

	sub, err := svc.Submit(t.Context(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "From the page.", sub.Description)
}

func TestSubmit_PrefillNeverOverwrites(t *testing.T) {
	prefiller := &fakePrefiller{meta: &metadata.PageMetadata{Description: "From the page."}}
	svc := newService(&fakeSubmissionStore{}, &fakeAssetStore{}, prefiller)

	req := validRequest()
	req.Description = "User wrote this."

	sub, err := svc.Submit(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "User wrote this.", sub.Description)
}

func TestSubmit_PrefillFailureIsIgnored(t *testing.T) {
	prefiller := &fakePrefiller{err: errors.New("unreachable")}
	svc := newService(&fakeSubmissionStore{}, &fakeAssetStore{}, prefiller)

	sub, err := svc.Submit(t.Context(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, sub.Description)
}

func TestDecide_TerminalRules(t *testing.T) {
	approved := &models.Submission{ID: "a", Status: models.StatusApproved}
	pending := &models.Submission{ID: "p", Status: models.StatusPending}
	subs := &fakeSubmissionStore{decided: map[string]*models.Submission{"a": approved, "p": pending}}
	svc := newService(subs, &fakeAssetStore{}, nil)

	// Same decision re-applied is idempotent.
	sub, err := svc.Decide(t.Context(), "a", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, sub.Status)

	// Different decision on a terminal submission conflicts.
	_, err = svc.Decide(t.Context(), "a", models.StatusDeclined)
	assert.True(t, errors.Is(err, models.ErrConflict))

	// Unknown id.
	_, err = svc.Decide(t.Context(), "missing", models.StatusApproved)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	// Pending decides normally.
	sub, err = svc.Decide(t.Context(), "p", models.StatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, sub.Status)
}

func TestDecodeImagePayload(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("hello"))

	got, err := decodeImagePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	got, err = decodeImagePayload("data:image/png;base64," + raw)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}
