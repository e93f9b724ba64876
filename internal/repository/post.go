// Package repository holds the PostgreSQL data access layer. All SQL lives
// here; sort columns are whitelisted and every statement uses positional
// arguments.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeai-tech/catalog-api/internal/catalog"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
)

const postColumns = `id, post_title, post_category, post_price, post_description, post_link, post_view, created_at`

type PostRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostRepository(db *sql.DB, log logger.Logger) *PostRepository {
	return &PostRepository{
		db:     db,
		logger: log,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO tools (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		post.ID,
		post.Title,
		post.Category,
		post.Price,
		post.Description,
		post.Link,
		post.Views,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM tools WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query post: %w", err)
	}
	return post, nil
}

// ListFiltered returns every post matching the filter, without pagination.
// The catalog engine paginates the materialized set because the Freebies
// union must be deduplicated before its total count means anything.
func (r *PostRepository) ListFiltered(ctx context.Context, filter catalog.Filter) ([]models.Post, error) {
	whereClause, args := buildPostWhere(filter)

	// Ordering here is only a pre-sort; the engine applies the final
	// deterministic order after the merge.
	query := `SELECT ` + postColumns + ` FROM tools WHERE 1=1` + whereClause

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	return scanPostRows(rows)
}

// buildPostWhere compiles the filter into SQL predicates. The Freebies
// virtual category becomes the union predicate over the literal tag and the
// free price tiers.
func buildPostWhere(filter catalog.Filter) (whereClause string, args []any) {
	var clauses []string
	args = make([]any, 0)
	pos := 1

	switch {
	case filter.Freebies():
		clauses = append(clauses, fmt.Sprintf("(post_category = $%d OR post_price IN ($%d, $%d))", pos, pos+1, pos+2))
		args = append(args, models.FreebiesCategory, models.PriceFree, models.PriceFreemium)
		pos += 3
	case filter.Category != "":
		clauses = append(clauses, fmt.Sprintf("post_category = $%d", pos))
		args = append(args, filter.Category)
		pos++
	}

	if filter.SearchTerm != "" {
		clauses = append(clauses, fmt.Sprintf("post_title ILIKE $%d", pos))
		args = append(args, "%"+filter.SearchTerm+"%")
		pos++
	}
	if filter.Price != "" {
		clauses = append(clauses, fmt.Sprintf("post_price = $%d", pos))
		args = append(args, filter.Price)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

// Popular returns the top-N posts by view count within a category. The
// freebies value routes through the virtual-category predicate.
func (r *PostRepository) Popular(ctx context.Context, category string, limit int) ([]models.Post, error) {
	filter := catalog.Filter{Category: category}
	whereClause, args := buildPostWhere(filter)

	query := fmt.Sprintf(`
		SELECT `+postColumns+`
		FROM tools
		WHERE 1=1`+whereClause+`
		ORDER BY post_view DESC, created_at ASC, id ASC
		LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query popular posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, err
	}
	if filter.Freebies() {
		for i := range posts {
			posts[i].Category = models.FreebiesCategory
		}
	}
	return posts, nil
}

// Trending returns the top-N posts by view count across the whole catalog.
func (r *PostRepository) Trending(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM tools
		ORDER BY post_view DESC, created_at ASC, id ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query trending posts: %w", err)
	}
	defer rows.Close()

	return scanPostRows(rows)
}

// IncrementView bumps the view counter by exactly one in a single statement
// and returns the new value. The increment reads the authoritative stored
// count, so concurrent views of the same post never lose updates.
func (r *PostRepository) IncrementView(ctx context.Context, id string) (int64, error) {
	query := `
		UPDATE tools
		SET post_view = post_view + 1
		WHERE id = $1
		RETURNING post_view
	`

	var views int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment post view: %w", err)
	}
	return views, nil
}

// Views returns the current stored view count without incrementing.
func (r *PostRepository) Views(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx, `SELECT post_view FROM tools WHERE id = $1`, id).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("query post view: %w", err)
	}
	return views, nil
}

// DistinctCategories returns the distinct non-empty categories across the
// catalog.
func (r *PostRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT post_category
		FROM tools
		WHERE post_category IS NOT NULL AND post_category <> ''
		ORDER BY post_category ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var category, price, description, link sql.NullString
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&category,
		&price,
		&description,
		&link,
		&post.Views,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}
	post.Category = category.String
	post.Price = price.String
	post.Description = description.String
	post.Link = link.String
	return &post, nil
}

func scanPostRows(rows *sql.Rows) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}
