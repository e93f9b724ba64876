package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/yeai-tech/catalog-api/internal/catalog"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/models"
)

const newsColumns = `post_id, post_title, post_category, post_description, post_link, created_at`

type NewsRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewNewsRepository(db *sql.DB, log logger.Logger) *NewsRepository {
	return &NewsRepository{
		db:     db,
		logger: log,
	}
}

// ListFiltered returns every news post matching the filter, pre-sorted.
// News has no virtual-category semantics, so sorting can stay in SQL; the
// handler paginates the materialized set to share the tools listing shape.
func (r *NewsRepository) ListFiltered(ctx context.Context, filter catalog.Filter) ([]models.NewsPost, error) {
	var clauses []string
	args := make([]any, 0)
	pos := 1

	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("post_category = $%d", pos))
		args = append(args, filter.Category)
		pos++
	}
	if filter.SearchTerm != "" {
		clauses = append(clauses, fmt.Sprintf("post_title ILIKE $%d", pos))
		args = append(args, "%"+filter.SearchTerm+"%")
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = " AND " + strings.Join(clauses, " AND ")
	}

	query := `SELECT ` + newsColumns + ` FROM news WHERE 1=1` + whereClause + buildNewsOrder(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	return scanNewsRows(rows)
}

var validNewsSortColumns = map[string]bool{
	"post_title":    true,
	"post_category": true,
	"created_at":    true,
}

func buildNewsOrder(filter catalog.Filter) string {
	sortBy := filter.SortBy
	if !validNewsSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, post_id ASC", sortBy, order)
}

// Paginate applies the shared pagination addressing to a materialized news
// result set.
func PaginateNews(posts []models.NewsPost, filter catalog.Filter) ([]models.NewsPost, int) {
	filter.Normalize()

	total := len(posts)
	start := filter.Offset * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return posts[start:end], total
}

// DistinctCategories returns the distinct non-empty news categories.
func (r *NewsRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT post_category
		FROM news
		WHERE post_category IS NOT NULL AND post_category <> ''
		ORDER BY post_category ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query news categories: %w", err)
	}
	defer rows.Close()

	categories, err := scanStrings(rows)
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categories[i]) < strings.ToLower(categories[j])
	})
	return categories, nil
}

func scanNewsRows(rows *sql.Rows) ([]models.NewsPost, error) {
	posts := make([]models.NewsPost, 0)
	for rows.Next() {
		var post models.NewsPost
		var category, description, link sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&category,
			&description,
			&link,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan news post: %w", err)
		}
		post.Category = category.String
		post.Description = description.String
		post.Link = link.String
		if createdAt.Valid {
			post.CreatedAt = createdAt.Time
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news posts: %w", err)
	}
	return posts, nil
}
