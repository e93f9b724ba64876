package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeai-tech/catalog-api/internal/catalog"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/testhelpers"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func postRows(posts ...models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "post_title", "post_category", "post_price",
		"post_description", "post_link", "post_view", "created_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Title, p.Category, p.Price, p.Description, p.Link, p.Views, p.CreatedAt)
	}
	return rows
}

func TestPostRepository_IncrementView(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE tools
		SET post_view = post_view + 1
		WHERE id = $1
		RETURNING post_view`)).
		WithArgs("tool-1").
		WillReturnRows(sqlmock.NewRows([]string{"post_view"}).AddRow(int64(8)))

	views, err := repo.IncrementView(t.Context(), "tool-1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IncrementViewNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	mock.ExpectQuery("UPDATE tools").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"post_view"}))

	_, err := repo.IncrementView(t.Context(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	mock.ExpectQuery("SELECT .+ FROM tools WHERE id").
		WithArgs("missing").
		WillReturnRows(postRows())

	_, err := repo.GetByID(t.Context(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostRepository_ListFilteredFreebiesPredicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		`(post_category = $1 OR post_price IN ($2, $3))`)).
		WithArgs(models.FreebiesCategory, models.PriceFree, models.PriceFreemium).
		WillReturnRows(postRows(models.Post{
			ID: "tool-1", Title: "ChatDraft", Category: "Writing",
			Price: models.PriceFree, Link: "https://example.com", CreatedAt: now,
		}))

	posts, err := repo.ListFiltered(t.Context(), catalog.Filter{Category: "freebies"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFilteredSearchAndPrice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	mock.ExpectQuery(regexp.QuoteMeta(
		`post_category = $1 AND post_title ILIKE $2 AND post_price = $3`)).
		WithArgs("Writing", "%draft%", "Paid").
		WillReturnRows(postRows())

	_, err := repo.ListFiltered(t.Context(), catalog.Filter{
		Category:   "Writing",
		SearchTerm: "draft",
		Price:      "Paid",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_PopularOrdering(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	mock.ExpectQuery(regexp.QuoteMeta(
		`ORDER BY post_view DESC, created_at ASC, id ASC`)).
		WithArgs("Writing", 10).
		WillReturnRows(postRows())

	_, err := repo.Popular(t.Context(), "Writing", 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_PopularFreebiesRelabels(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db, testhelpers.NewTestLogger())

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM tools").
		WithArgs(models.FreebiesCategory, models.PriceFree, models.PriceFreemium, 5).
		WillReturnRows(postRows(models.Post{
			ID: "tool-1", Title: "PixelForge", Category: "Design",
			Price: models.PriceFree, Link: "https://example.com", CreatedAt: now,
		}))

	posts, err := repo.Popular(t.Context(), "freebies", 5)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, models.FreebiesCategory, posts[0].Category)
}
