package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"journal/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	ctx := context.Background()

	post := &models.Post{Title: "First Post", Content: "Hello world"}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)
	assert.False(t, post.Date.IsZero(), "date should default to creation time")

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Post", got.Title)
	assert.Equal(t, "Hello world", got.Content)
	assert.Equal(t, post.ID, got.ID)
}

func TestPostRepository_CreateKeepsExplicitDate(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	ctx := context.Background()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	post := &models.Post{Title: "Dated", Content: "Body", Date: date}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

func TestPostRepository_List(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Post{Title: "A", Content: "a"}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "B", Content: "b"}))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestPostRepository_Update(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	ctx := context.Background()

	post := &models.Post{Title: "Old", Content: "Old body"}
	require.NoError(t, repo.Create(ctx, post))
	created := post.Date

	require.NoError(t, repo.Update(ctx, post.ID, "New", "Body"))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Body", got.Content)
	assert.Equal(t, post.ID, got.ID)
	assert.True(t, got.Date.Equal(created), "date must be unchanged by edits")
}

func TestPostRepository_Update_MissingIDIsSilent(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	err := repo.Update(context.Background(), 12345, "T", "C")
	assert.NoError(t, err)
}

func TestPostRepository_Delete(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	ctx := context.Background()

	post := &models.Post{Title: "Doomed", Content: "..."}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

// newMockDB wires GORM's Postgres dialector onto sqlmock so the Postgres-only
// full-text SQL can be asserted without a running server.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestPostRepository_Search(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "date"}).
		AddRow(2, "Go tips", "All about Go", time.Now()).
		AddRow(1, "Misc", "Go appears here too", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(
		`to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', $1)`,
	)).
		WithArgs("go", "go").
		WillReturnRows(rows)

	posts, err := repo.Search(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Go tips", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Search_NoMatches(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery("to_tsvector").
		WithArgs("nothing", "nothing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "date"}))

	posts, err := repo.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
