package postgres

import (
	"context"
	"database/sql"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
	"github.com/phrazzld/bloggers-api/internal/view"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var userRowColumns = []string{
	"id", "login", "email", "password_hash", "created_at",
	"confirmation_code", "confirmation_expires_at", "is_confirmed",
}

func TestUserStore_Create(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)
	u, err := domain.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.ID, "alice", "alice@example.com", "hash", u.CreatedAt, nil, nil, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_CreateDuplicate(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{constraint: usersLoginKey, want: store.ErrLoginExists},
		{constraint: usersEmailKey, want: store.ErrEmailExists},
	}

	for _, tc := range tests {
		t.Run(tc.constraint, func(t *testing.T) {
			db, mock := newMock(t)
			s := NewPostgresUserStore(db, nil)
			u, err := domain.NewUser("alice", "alice@example.com", "hash")
			require.NoError(t, err)

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
				WillReturnError(newPgError(uniqueViolationCode, tc.constraint))

			assert.ErrorIs(t, s.Create(context.Background(), u), tc.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserStore_GetByLoginOrEmail(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)
	id := uuid.New()
	created := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	expires := created.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE login = $1 OR email = $1")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "alice", "alice@example.com", "hash", created, "code-1", expires, false))

	u, err := s.GetByLoginOrEmail(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "code-1", u.EmailConfirmation.ConfirmationCode)
	assert.Equal(t, expires, u.EmailConfirmation.ExpirationDate)
	assert.False(t, u.EmailConfirmation.IsConfirmed)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE login = $1 OR email = $1")).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)
	_, err = s.GetByLoginOrEmail(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogStore_ListPipeline(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresBlogStore(db, nil)
	created := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM blogs WHERE strpos(lower(name::text), lower($1)) > 0")).
		WithArgs("te").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE strpos(lower(name::text), lower($1)) > 0 ORDER BY name ASC, id ASC LIMIT $2 OFFSET $3")).
		WithArgs("te", int64(3), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "website_url", "created_at", "is_membership"}).
			AddRow(uuid.NewString(), "tech-03", "d", "https://a.example.com", created, false).
			AddRow(uuid.NewString(), "tech-04", "d", "https://b.example.com", created, true).
			AddRow(uuid.NewString(), "tech-05", "d", "https://c.example.com", created, false))

	f := query.DefaultFilter()
	f.PageNumber, f.PageSize = 2, 3
	f.SortBy, f.SortDirection = "name", query.Ascending
	term := "te"
	pred := query.Build(query.Partial, query.T(query.PathBlogName, &term))

	page, err := query.List(context.Background(), s, query.BlogProperties, pred, f, view.FromBlog)
	require.NoError(t, err)

	assert.Equal(t, int64(4), page.PagesCount)
	assert.Equal(t, int64(11), page.TotalCount)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "tech-03", page.Items[0].Name)
	assert.True(t, page.Items[1].IsMembership)
	assert.Equal(t, "2024-02-02T10:00:00.000Z", page.Items[2].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogStore_PageSizeLargerThanTable(t *testing.T) {
	tests := []struct {
		name     string
		pageSize string
		limit    int64
	}{
		{name: "max int", pageSize: strconv.Itoa(math.MaxInt), limit: int64(math.MaxInt)},
		{name: "larger than row count", pageSize: "50", limit: 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			s := NewPostgresBlogStore(db, nil)
			created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM blogs WHERE TRUE")).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE TRUE ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2")).
				WithArgs(tc.limit, int64(0)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "website_url", "created_at", "is_membership"}).
					AddRow(uuid.NewString(), "only", "d", "https://only.example.com", created, false))

			f := query.Normalize(url.Values{query.ParamPageSize: {tc.pageSize}})
			page, err := query.List(context.Background(), s, query.BlogProperties, query.MatchAll{}, f, view.FromBlog)
			require.NoError(t, err)

			assert.Equal(t, int64(1), page.TotalCount)
			assert.Equal(t, int64(1), page.PagesCount)
			require.Len(t, page.Items, 1)
			assert.Equal(t, "only", page.Items[0].Name)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostStore_PageBeyondEndSkipsSelect(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresPostStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM posts WHERE TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	f := query.DefaultFilter()
	f.PageNumber = 100
	page, err := query.List(context.Background(), s, query.PostProperties, query.MatchAll{}, f, view.FromPost)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 100, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet(), "no SELECT is issued past the end")
}

func TestCommentStore_UpdateOnlyContent(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresCommentStore(db, nil)
	c := &domain.Comment{ID: uuid.New(), Content: "updated comment content here"}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET content = $2 WHERE id = $1")).
		WithArgs(c.ID, c.Content).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleaner_DeleteAll(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	for _, table := range []string{"comments", "posts", "blogs", "users"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, NewCleaner(db).DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleaner_DeleteAllRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts")).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := NewCleaner(db).DeleteAll(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := Migrations.ReadDir(MigrationsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
