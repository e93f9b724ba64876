package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeai-tech/catalog-api/internal/models"
	"github.com/yeai-tech/catalog-api/internal/testhelpers"
)

func TestBookmarkRepository_ToggleInsertsWhenAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookmarkRepository(db, testhelpers.NewTestLogger())

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (user_id, post_id) DO NOTHING`)).
		WithArgs("user-1", "tool-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	bookmarked, err := repo.Toggle(t.Context(), "user-1", "tool-1")
	require.NoError(t, err)
	assert.True(t, bookmarked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepository_ToggleDeletesWhenPresent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookmarkRepository(db, testhelpers.NewTestLogger())

	// The conflicting insert affects no rows, so the pair already exists and
	// the toggle falls through to the delete.
	mock.ExpectExec("INSERT INTO user_bookmarks").
		WithArgs("user-1", "tool-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM user_bookmarks").
		WithArgs("user-1", "tool-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	bookmarked, err := repo.Toggle(t.Context(), "user-1", "tool-1")
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepository_RemoveIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookmarkRepository(db, testhelpers.NewTestLogger())

	mock.ExpectExec("DELETE FROM user_bookmarks").
		WithArgs("user-1", "tool-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(t.Context(), "user-1", "tool-1")
	assert.NoError(t, err)
}

func TestBookmarkRepository_ListIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookmarkRepository(db, testhelpers.NewTestLogger())

	mock.ExpectQuery("SELECT post_id FROM user_bookmarks").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).
			AddRow("tool-1").
			AddRow("tool-2"))

	ids, err := repo.ListIDs(t.Context(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tool-1", "tool-2"}, ids)
}

func TestBookmarkRepository_ListPosts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookmarkRepository(db, testhelpers.NewTestLogger())

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("JOIN tools t ON t.id = b.post_id").
		WithArgs("user-1", 5, 5).
		WillReturnRows(postRows(models.Post{
			ID: "tool-6", Title: "ChatDraft", Category: "Writing",
			Link: "https://example.com", Views: 3, CreatedAt: now,
		}))

	posts, total, err := repo.ListPosts(t.Context(), "user-1", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "tool-6", posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
