package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

const (
	blogColumns    = `id, name, description, website_url, created_at, is_membership`
	postColumns    = `id, title, short_description, content, blog_id, blog_name, created_at`
	commentColumns = `id, post_id, content, commentator_user_id, commentator_user_login, created_at`
)

var blogColumnMap = columnMap{
	query.PathID:               "id",
	query.PathBlogName:         "name",
	query.PathBlogDescription:  "description",
	query.PathBlogWebsiteURL:   "website_url",
	query.PathBlogIsMembership: "is_membership",
	query.PathCreatedAt:        "created_at",
}

var postColumnMap = columnMap{
	query.PathID:                   "id",
	query.PathPostTitle:            "title",
	query.PathPostShortDescription: "short_description",
	query.PathPostContent:          "content",
	query.PathPostBlogID:           "blog_id",
	query.PathPostBlogName:         "blog_name",
	query.PathCreatedAt:            "created_at",
}

var commentColumnMap = columnMap{
	query.PathID:               "id",
	query.PathCommentContent:   "content",
	query.PathCommentPostID:    "post_id",
	query.PathCommentUserID:    "commentator_user_id",
	query.PathCommentUserLogin: "commentator_user_login",
	query.PathCreatedAt:        "created_at",
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("component", component))
}

// PostgresBlogStore implements store.BlogStore.
type PostgresBlogStore struct {
	*finder[domain.Blog]
}

var _ store.BlogStore = (*PostgresBlogStore)(nil)

// NewPostgresBlogStore creates a PostgresBlogStore.
func NewPostgresBlogStore(db store.DBTX, logger *slog.Logger) *PostgresBlogStore {
	return &PostgresBlogStore{&finder[domain.Blog]{
		db:         db,
		logger:     componentLogger(logger, "blog_store"),
		entity:     "blog",
		table:      "blogs",
		selectCols: blogColumns,
		columns:    blogColumnMap,
		scan: func(row rowScanner) (*domain.Blog, error) {
			var b domain.Blog
			if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.WebsiteURL, &b.CreatedAt, &b.IsMembership); err != nil {
				return nil, err
			}
			b.CreatedAt = b.CreatedAt.UTC()
			return &b, nil
		},
	}}
}

// Create implements store.BlogStore.
func (s *PostgresBlogStore) Create(ctx context.Context, b *domain.Blog) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blogs (`+blogColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.Description, b.WebsiteURL, b.CreatedAt, b.IsMembership)
	return MapError(err)
}

// GetByID implements store.BlogStore.
func (s *PostgresBlogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	return s.getOne(ctx, store.ErrBlogNotFound, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
}

// Update implements store.BlogStore. Posts keep their blog_name snapshot.
func (s *PostgresBlogStore) Update(ctx context.Context, b *domain.Blog) error {
	return s.exec(ctx, store.ErrBlogNotFound,
		`UPDATE blogs SET name = $2, description = $3, website_url = $4, is_membership = $5 WHERE id = $1`,
		b.ID, b.Name, b.Description, b.WebsiteURL, b.IsMembership)
}

// Delete implements store.BlogStore.
func (s *PostgresBlogStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, store.ErrBlogNotFound, `DELETE FROM blogs WHERE id = $1`, id)
}

// PostgresPostStore implements store.PostStore.
type PostgresPostStore struct {
	*finder[domain.Post]
}

var _ store.PostStore = (*PostgresPostStore)(nil)

// NewPostgresPostStore creates a PostgresPostStore.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	return &PostgresPostStore{&finder[domain.Post]{
		db:         db,
		logger:     componentLogger(logger, "post_store"),
		entity:     "post",
		table:      "posts",
		selectCols: postColumns,
		columns:    postColumnMap,
		scan: func(row rowScanner) (*domain.Post, error) {
			var p domain.Post
			if err := row.Scan(&p.ID, &p.Title, &p.ShortDescription, &p.Content, &p.BlogID, &p.BlogName, &p.CreatedAt); err != nil {
				return nil, err
			}
			p.CreatedAt = p.CreatedAt.UTC()
			return &p, nil
		},
	}}
}

// Create implements store.PostStore.
func (s *PostgresPostStore) Create(ctx context.Context, p *domain.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Title, p.ShortDescription, p.Content, p.BlogID, p.BlogName, p.CreatedAt)
	return MapError(err)
}

// GetByID implements store.PostStore.
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.getOne(ctx, store.ErrPostNotFound, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
}

// Update implements store.PostStore.
func (s *PostgresPostStore) Update(ctx context.Context, p *domain.Post) error {
	return s.exec(ctx, store.ErrPostNotFound,
		`UPDATE posts SET title = $2, short_description = $3, content = $4, blog_id = $5, blog_name = $6 WHERE id = $1`,
		p.ID, p.Title, p.ShortDescription, p.Content, p.BlogID, p.BlogName)
}

// Delete implements store.PostStore.
func (s *PostgresPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, store.ErrPostNotFound, `DELETE FROM posts WHERE id = $1`, id)
}

// PostgresCommentStore implements store.CommentStore.
type PostgresCommentStore struct {
	*finder[domain.Comment]
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

// NewPostgresCommentStore creates a PostgresCommentStore.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	return &PostgresCommentStore{&finder[domain.Comment]{
		db:         db,
		logger:     componentLogger(logger, "comment_store"),
		entity:     "comment",
		table:      "comments",
		selectCols: commentColumns,
		columns:    commentColumnMap,
		scan: func(row rowScanner) (*domain.Comment, error) {
			var c domain.Comment
			if err := row.Scan(&c.ID, &c.PostID, &c.Content,
				&c.CommentatorInfo.UserID, &c.CommentatorInfo.UserLogin, &c.CreatedAt); err != nil {
				return nil, err
			}
			c.CreatedAt = c.CreatedAt.UTC()
			return &c, nil
		},
	}}
}

// Create implements store.CommentStore.
func (s *PostgresCommentStore) Create(ctx context.Context, c *domain.Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (`+commentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.PostID, c.Content, c.CommentatorInfo.UserID, c.CommentatorInfo.UserLogin, c.CreatedAt)
	return MapError(err)
}

// GetByID implements store.CommentStore.
func (s *PostgresCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.getOne(ctx, store.ErrCommentNotFound, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
}

// Update implements store.CommentStore. Only the content is mutable.
func (s *PostgresCommentStore) Update(ctx context.Context, c *domain.Comment) error {
	return s.exec(ctx, store.ErrCommentNotFound,
		`UPDATE comments SET content = $2 WHERE id = $1`, c.ID, c.Content)
}

// Delete implements store.CommentStore.
func (s *PostgresCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, store.ErrCommentNotFound, `DELETE FROM comments WHERE id = $1`, id)
}
