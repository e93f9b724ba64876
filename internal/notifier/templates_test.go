package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeai-tech/catalog-api/internal/models"
)

func TestAdminReviewBody(t *testing.T) {
	sub := &models.Submission{
		ID:       "abc-123",
		UserID:   "user-9",
		Email:    "dev@example.com",
		Title:    "Foo <Tool>",
		Link:     "https://foo.example",
		Category: "AI",
		Price:    "Free",
	}

	body := adminReviewBody(sub, "https://yeai.tech/approve-tool")

	assert.Contains(t, body, "https://yeai.tech/approve-tool?toolId=abc-123&pending=approved")
	assert.Contains(t, body, "https://yeai.tech/approve-tool?toolId=abc-123&pending=declined")
	assert.Contains(t, body, "dev@example.com")
	// HTML in submitted fields must not survive unescaped.
	assert.NotContains(t, body, "Foo <Tool>")
	assert.Contains(t, body, "Foo &lt;Tool&gt;")
}

func TestNilNotifierIsNoOp(t *testing.T) {
	var n *Notifier

	assert.NoError(t, n.SubmissionReceived(t.Context(), &models.Submission{}))
	assert.NoError(t, n.AdminReview(t.Context(), &models.Submission{}))
	assert.NoError(t, n.ReportIssue(t.Context(), "p", "m", ""))
	n.NotifySubmissionAsync(&models.Submission{})
}
