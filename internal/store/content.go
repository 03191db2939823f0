package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
)

// BlogStore defines the interface for blog persistence.
type BlogStore interface {
	query.Finder[domain.Blog]

	Create(ctx context.Context, blog *domain.Blog) error

	// GetByID returns ErrBlogNotFound if the blog does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)

	// Update returns ErrBlogNotFound if the blog does not exist.
	// Posts referencing the blog are left untouched.
	Update(ctx context.Context, blog *domain.Blog) error

	// Delete returns ErrBlogNotFound if the blog does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostStore defines the interface for post persistence.
type PostStore interface {
	query.Finder[domain.Post]

	Create(ctx context.Context, post *domain.Post) error

	// GetByID returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// Update returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error

	// Delete returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentStore defines the interface for comment persistence.
type CommentStore interface {
	query.Finder[domain.Comment]

	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// Update returns ErrCommentNotFound if the comment does not exist.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cleaner wipes every collection. It backs the testing reset endpoint.
type Cleaner interface {
	DeleteAll(ctx context.Context) error
}

// Stores bundles one backend's implementations.
type Stores struct {
	Users    UserStore
	Blogs    BlogStore
	Posts    PostStore
	Comments CommentStore
	Cleaner  Cleaner
}
