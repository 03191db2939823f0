package mongo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
	"github.com/phrazzld/bloggers-api/internal/testutils"
	"github.com/phrazzld/bloggers-api/internal/view"
)

const testTimeout = 10 * time.Second

// mongoURI is set by TestMain when integration tests are enabled.
var mongoURI string

func TestMain(m *testing.M) {
	if !testutils.IsIntegrationTestEnvironment() {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}
	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

// newTestMongo connects to a fresh database, skipping when integration
// tests are disabled.
func newTestMongo(t *testing.T) *Mongo {
	t.Helper()
	if mongoURI == "" {
		testutils.SkipUnlessIntegration(t)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	m, err := Connect(ctx, mongoURI, name, testTimeout, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.db.Drop(context.Background())
		_ = m.Close(context.Background())
	})
	return m
}

func TestIntegration_UserUniqueness(t *testing.T) {
	m := newTestMongo(t)
	ctx := context.Background()
	users := m.Stores().Users

	alice, err := domain.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, alice))

	dupLogin, err := domain.NewUser("alice", "other@example.com", "hash")
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dupLogin), store.ErrLoginExists)

	dupEmail, err := domain.NewUser("bob", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dupEmail), store.ErrEmailExists)

	got, err := users.GetByLoginOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
}

func TestIntegration_BlogListPipeline(t *testing.T) {
	m := newTestMongo(t)
	ctx := context.Background()
	blogs := m.Stores().Blogs

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 11; i++ {
		b, err := domain.NewBlog(fmt.Sprintf("blog-%02d", i), "d", "https://example.com")
		require.NoError(t, err)
		b.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, blogs.Create(ctx, b))
	}

	f := query.DefaultFilter()
	f.PageNumber, f.PageSize = 2, 3
	f.SortBy, f.SortDirection = "name", query.Ascending

	page, err := query.List(ctx, blogs, query.BlogProperties, query.MatchAll{}, f, view.FromBlog)
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.TotalCount)
	assert.Equal(t, int64(4), page.PagesCount)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "blog-03", page.Items[0].Name)
	assert.Equal(t, "blog-05", page.Items[2].Name)

	term := "BLOG-1"
	pred := query.Build(query.Partial, query.T(query.PathBlogName, &term))
	page, err = query.List(ctx, blogs, query.BlogProperties, pred, query.DefaultFilter(), view.FromBlog)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
	assert.Equal(t, "blog-10", page.Items[0].Name)
}

func TestIntegration_PageSizeLargerThanCollection(t *testing.T) {
	m := newTestMongo(t)
	ctx := context.Background()
	blogs := m.Stores().Blogs

	for i := 0; i < 2; i++ {
		b, err := domain.NewBlog(fmt.Sprintf("wide-%d", i), "d", "https://example.com")
		require.NoError(t, err)
		require.NoError(t, blogs.Create(ctx, b))
	}

	for _, size := range []string{strconv.Itoa(math.MaxInt), "50"} {
		f := query.Normalize(url.Values{query.ParamPageSize: {size}})
		page, err := query.List(ctx, blogs, query.BlogProperties, query.MatchAll{}, f, view.FromBlog)
		require.NoError(t, err, size)
		assert.Equal(t, int64(2), page.TotalCount, size)
		assert.Equal(t, int64(1), page.PagesCount, size)
		assert.Len(t, page.Items, 2, size)
	}
}

func TestIntegration_DeleteAll(t *testing.T) {
	m := newTestMongo(t)
	ctx := context.Background()
	stores := m.Stores()

	b, err := domain.NewBlog("Tech", "d", "https://tech.example.com")
	require.NoError(t, err)
	require.NoError(t, stores.Blogs.Create(ctx, b))
	p, err := domain.NewPost("title", "short", "content", b)
	require.NoError(t, err)
	require.NoError(t, stores.Posts.Create(ctx, p))

	require.NoError(t, stores.Cleaner.DeleteAll(ctx))

	n, err := stores.Posts.Count(ctx, query.MatchAll{})
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = stores.Blogs.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrBlogNotFound)
}
