package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
)

const submissionColumns = `id, user_id, email, post_title, post_link, post_category, post_price, post_description, status, created_at, decided_at`

type SubmissionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSubmissionRepository(db *sql.DB, log logger.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: log,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	sub.Status = models.StatusPending

	query := `
		INSERT INTO submissions (id, user_id, email, post_title, post_link, post_category, post_price, post_description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.Email,
		sub.Title,
		sub.Link,
		sub.Category,
		sub.Price,
		sub.Description,
		sub.Status,
		sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query submission: %w", err)
	}
	return sub, nil
}

// Decide applies a moderation decision in one transaction. The row is locked
// for the duration, the terminal-state rules are enforced against the locked
// row, and on approval the promoted post lands in tools before the status
// flips: either both commit or neither does.
//
// Re-applying the decision a submission already carries is an idempotent
// no-op; a different decision on a terminal submission is a conflict.
func (r *SubmissionRepository) Decide(ctx context.Context, id, decision string) (*models.Submission, error) {
	if !models.ValidDecision(decision) {
		return nil, fmt.Errorf("%w: decision must be %q or %q", models.ErrValidation, models.StatusApproved, models.StatusDeclined)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.logger.Error("failed to rollback decision transaction",
					logger.String("submission_id", id),
					logger.Error(rbErr),
				)
			}
		}
	}()

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1 FOR UPDATE`
	sub, err := scanSubmission(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("submission %s: %w", id, models.ErrNotFound)
		return nil, err
	}
	if err != nil {
		err = fmt.Errorf("query submission: %w", err)
		return nil, err
	}

	if sub.Terminal() {
		if sub.Status == decision {
			// Already decided the same way; nothing to redo.
			if commitErr := tx.Commit(); commitErr != nil {
				err = fmt.Errorf("commit transaction: %w", commitErr)
				return nil, err
			}
			return sub, nil
		}
		err = fmt.Errorf("submission %s already %s: %w", id, sub.Status, models.ErrConflict)
		return nil, err
	}

	if decision == models.StatusApproved {
		post := sub.Promote()
		insertQuery := `
			INSERT INTO tools (` + postColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err = tx.ExecContext(ctx,
			insertQuery,
			post.ID,
			post.Title,
			post.Category,
			post.Price,
			post.Description,
			post.Link,
			post.Views,
			post.CreatedAt,
		); err != nil {
			err = fmt.Errorf("promote submission: %w", err)
			return nil, err
		}
	}

	now := time.Now()
	if _, err = tx.ExecContext(ctx,
		`UPDATE submissions SET status = $2, decided_at = $3 WHERE id = $1`,
		id, decision, now,
	); err != nil {
		err = fmt.Errorf("update submission status: %w", err)
		return nil, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = fmt.Errorf("commit transaction: %w", commitErr)
		return nil, err
	}

	sub.Status = decision
	sub.DecidedAt = &now
	return sub, nil
}

// ListByUser returns the user's own submissions, newest first, paginated.
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Submission, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.Submission, 0)
	for rows.Next() {
		sub, scanErr := scanSubmission(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", scanErr)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate submissions: %w", err)
	}

	return subs, total, nil
}

// ApprovedIDsByUser returns the ids of the user's submissions that have been
// promoted into the public catalog.
func (r *SubmissionRepository) ApprovedIDsByUser(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT id
		FROM submissions
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("query approved submission ids: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var sub models.Submission
	var userID, email, category, price, description sql.NullString
	var decidedAt sql.NullTime
	if err := row.Scan(
		&sub.ID,
		&userID,
		&email,
		&sub.Title,
		&sub.Link,
		&category,
		&price,
		&description,
		&sub.Status,
		&sub.CreatedAt,
		&decidedAt,
	); err != nil {
		return nil, err
	}
	sub.UserID = userID.String
	sub.Email = email.String
	sub.Category = category.String
	sub.Price = price.String
	sub.Description = description.String
	if decidedAt.Valid {
		sub.DecidedAt = &decidedAt.Time
	}
	return &sub, nil
}
