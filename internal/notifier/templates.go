package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/yeai-tech/catalog-api/internal/models"
)

const actionButtonStyle = "color: white; padding: 15px 32px; text-align: center; " +
	"text-decoration: none; display: inline-block; font-size: 16px; " +
	"margin: 4px 2px; cursor: pointer; border-radius: 12px;"

// adminReviewBody renders the review email: the submission details followed
// by approve/decline action links keyed by the submission id.
func adminReviewBody(sub *models.Submission, decisionBaseURL string) string {
	var b strings.Builder

	b.WriteString("<p>A new tool has been submitted for review.</p>")
	b.WriteString("<p>Details:</p>")
	for _, field := range []string{
		sub.UserID,
		sub.Email,
		sub.Title,
		sub.Link,
		sub.Category,
		sub.Price,
		sub.Description,
	} {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(field))
	}

	fmt.Fprintf(&b,
		`<a href="%s" style="background-color: #4CAF50; %s">Approve</a>`,
		decisionURL(decisionBaseURL, sub.ID, models.StatusApproved), actionButtonStyle)
	fmt.Fprintf(&b,
		`<a href="%s" style="background-color: #f44336; %s">Decline</a>`,
		decisionURL(decisionBaseURL, sub.ID, models.StatusDeclined), actionButtonStyle)

	return b.String()
}

func decisionURL(base, submissionID, decision string) string {
	return fmt.Sprintf("%s?toolId=%s&pending=%s", base, submissionID, decision)
}
