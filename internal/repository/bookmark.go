package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
)

type BookmarkRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewBookmarkRepository(db *sql.DB, log logger.Logger) *BookmarkRepository {
	return &BookmarkRepository{
		db:     db,
		logger: log,
	}
}

// Toggle flips the bookmark state for a (user, post) pair and reports the
// resulting state. The insert races through the primary key: ON CONFLICT DO
// NOTHING means exactly one of two concurrent toggles wins the insert and
// the other falls through to the delete, so concurrent toggles serialize
// instead of losing updates.
func (r *BookmarkRepository) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	query := `
		INSERT INTO user_bookmarks (user_id, post_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, post_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("insert bookmark: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	if inserted > 0 {
		return true, nil
	}

	if err := r.Remove(ctx, userID, postID); err != nil {
		return false, err
	}
	return false, nil
}

// Add inserts the pair if absent. Idempotent.
func (r *BookmarkRepository) Add(ctx context.Context, userID, postID string) error {
	query := `
		INSERT INTO user_bookmarks (user_id, post_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, post_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

// Remove deletes the pair if present. Idempotent.
func (r *BookmarkRepository) Remove(ctx context.Context, userID, postID string) error {
	query := `DELETE FROM user_bookmarks WHERE user_id = $1 AND post_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// ListIDs returns the post ids the user has bookmarked.
func (r *BookmarkRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT post_id
		FROM user_bookmarks
		WHERE user_id = $1
		ORDER BY created_at ASC, post_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query bookmark ids: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// ListPosts resolves the user's bookmarks to full post records, paginated.
// Bookmarked ids that no longer resolve to a post are omitted by the join;
// the total reflects resolvable posts only.
func (r *BookmarkRepository) ListPosts(ctx context.Context, userID string, page, pageSize int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM user_bookmarks b
		JOIN tools t ON t.id = b.post_id
		WHERE b.user_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookmarked posts: %w", err)
	}

	query := `
		SELECT t.id, t.post_title, t.post_category, t.post_price, t.post_description, t.post_link, t.post_view, t.created_at
		FROM user_bookmarks b
		JOIN tools t ON t.id = b.post_id
		WHERE b.user_id = $1
		ORDER BY b.created_at ASC, t.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("query bookmarked posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
