package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
	"github.com/phrazzld/bloggers-api/internal/view"
)

// BlogInput carries the writable blog fields.
type BlogInput struct {
	Name        string
	Description string
	WebsiteURL  string
}

// PostContent carries the writable post fields other than the parent blog.
type PostContent struct {
	Title            string
	ShortDescription string
	Content          string
}

// BlogService manages blogs and the posts nested under them.
type BlogService struct {
	blogs  store.BlogStore
	posts  store.PostStore
	logger *slog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(blogs store.BlogStore, posts store.PostStore, logger *slog.Logger) *BlogService {
	return &BlogService{
		blogs:  blogs,
		posts:  posts,
		logger: componentLogger(logger, "blog_service"),
	}
}

// List returns one page of blogs filtered by a partial searchNameTerm.
func (s *BlogService) List(ctx context.Context, f query.Filter) (*query.Paginator[view.Blog], error) {
	pred := query.Build(query.Partial, query.T(query.PathBlogName, f.SearchNameTerm))
	return query.List(ctx, s.blogs, query.BlogProperties, pred, f, view.FromBlog)
}

// Get returns store.ErrBlogNotFound when the blog does not exist.
func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// Create adds a blog. New blogs are never membership blogs.
func (s *BlogService) Create(ctx context.Context, in BlogInput) (*domain.Blog, error) {
	blog, err := domain.NewBlog(in.Name, in.Description, in.WebsiteURL)
	if err != nil {
		return nil, err
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog", "error", err)
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	s.logger.Info("blog created", "blog_id", blog.ID)
	return blog, nil
}

// Update replaces the writable fields of a blog. Posts keep the blog name
// they were created or last updated with.
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, in BlogInput) error {
	blog, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	blog.Name = in.Name
	blog.Description = in.Description
	blog.WebsiteURL = in.WebsiteURL
	if err := blog.Validate(); err != nil {
		return err
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return nil
}

// Delete removes a blog. Its posts are left in place.
func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.blogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	s.logger.Info("blog deleted", "blog_id", id)
	return nil
}

// ListPosts returns one page of the posts of blogID. The blog must exist;
// otherwise store.ErrBlogNotFound is returned and nothing is listed.
func (s *BlogService) ListPosts(ctx context.Context, blogID uuid.UUID, f query.Filter) (*query.Paginator[view.Post], error) {
	if _, err := s.Get(ctx, blogID); err != nil {
		return nil, err
	}
	pred := query.FieldEquals{Field: query.PathPostBlogID, Value: blogID.String()}
	return query.List(ctx, s.posts, query.PostProperties, pred, f, view.FromPost)
}

// CreatePost adds a post to blogID, snapshotting the blog's current name.
func (s *BlogService) CreatePost(ctx context.Context, blogID uuid.UUID, in PostContent) (*domain.Post, error) {
	blog, err := s.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return createPost(ctx, s.posts, s.logger, blog, in)
}

func createPost(ctx context.Context, posts store.PostStore, logger *slog.Logger, blog *domain.Blog, in PostContent) (*domain.Post, error) {
	post, err := domain.NewPost(in.Title, in.ShortDescription, in.Content, blog)
	if err != nil {
		return nil, err
	}
	if err := posts.Create(ctx, post); err != nil {
		logger.Error("failed to create post", "error", err, "blog_id", blog.ID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	logger.Info("post created", "post_id", post.ID, "blog_id", blog.ID)
	return post, nil
}
