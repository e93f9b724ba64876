// Package notifier sends the moderation workflow's outbound email: the
// submitter confirmation, the admin review request with approve/decline
// links, and user issue reports.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"github.com/yeai-tech/catalog-api/internal/config"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
)

const sendTimeout = 15 * time.Second

// Notifier wraps an SMTP client. A nil *Notifier is a safe no-op, so callers
// can hold one unconditionally whether or not SMTP is configured.
type Notifier struct {
	client          *mail.Client
	from            string
	adminEmail      string
	decisionBaseURL string
	log             logger.Logger
}

// New builds a notifier from config. Returns nil (disabled) when no SMTP
// host is configured.
func New(cfg *config.Config, log logger.Logger) (*Notifier, error) {
	if cfg.SMTP.Host == "" {
		return nil, nil
	}

	client, err := mail.NewClient(cfg.SMTP.Host,
		mail.WithPort(cfg.SMTP.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTP.User),
		mail.WithPassword(cfg.SMTP.Password),
		mail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Notifier{
		client:          client,
		from:            cfg.SMTP.From,
		adminEmail:      cfg.Admin.Email,
		decisionBaseURL: cfg.Admin.DecisionBaseURL,
		log:             log,
	}, nil
}

// SubmissionReceived confirms receipt to the submitter.
func (n *Notifier) SubmissionReceived(ctx context.Context, sub *models.Submission) error {
	if n == nil {
		return nil
	}

	msg, err := n.newMessage(sub.Email, "Submission received")
	if err != nil {
		return err
	}
	msg.SetBodyString(mail.TypeTextPlain,
		"Your tool submission is successful. We will further inspect it.")

	return n.send(ctx, msg)
}

// AdminReview asks the admin to review a pending submission, with
// approve/decline links keyed by the submission id.
func (n *Notifier) AdminReview(ctx context.Context, sub *models.Submission) error {
	if n == nil {
		return nil
	}

	msg, err := n.newMessage(n.adminEmail, "New tool submitted")
	if err != nil {
		return err
	}
	msg.SetBodyString(mail.TypeTextHTML, adminReviewBody(sub, n.decisionBaseURL))

	return n.send(ctx, msg)
}

// ReportIssue relays a user's issue report about a post to the admin
// mailbox. Unlike the submission mails this is the caller's whole operation,
// so the error is returned rather than swallowed.
func (n *Notifier) ReportIssue(ctx context.Context, postTitle, message, replyTo string) error {
	if n == nil {
		return nil
	}

	msg, err := n.newMessage(n.adminEmail, fmt.Sprintf("Report for post: %s", postTitle))
	if err != nil {
		return err
	}
	if replyTo != "" {
		msg.SetGenHeader(mail.HeaderReplyTo, replyTo)
	}
	msg.SetBodyString(mail.TypeTextPlain, message)

	return n.send(ctx, msg)
}

// NotifySubmissionAsync fires the submitter confirmation and the admin
// review mail as two independent best-effort tasks. Failures are logged and
// never reach the submission response; the context is detached because the
// request that triggered the mail has already succeeded.
func (n *Notifier) NotifySubmissionAsync(sub *models.Submission) {
	if n == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.SubmissionReceived(ctx, sub); err != nil {
			n.log.Error("failed to send submission confirmation",
				logger.String("submission_id", sub.ID),
				logger.Error(err),
			)
		}
	}()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.AdminReview(ctx, sub); err != nil {
			n.log.Error("failed to send admin review request",
				logger.String("submission_id", sub.ID),
				logger.Error(err),
			)
		}
	}()
}

func (n *Notifier) newMessage(to, subject string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	return msg, nil
}

func (n *Notifier) send(ctx context.Context, msg *mail.Msg) error {
	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
