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

// PostInput carries the writable post fields. BlogID is the raw identifier
// sent by the client.
type PostInput struct {
	PostContent
	BlogID string
}

// PostService manages posts and the comments nested under them.
type PostService struct {
	posts    store.PostStore
	blogs    store.BlogStore
	comments store.CommentStore
	logger   *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	posts store.PostStore,
	blogs store.BlogStore,
	comments store.CommentStore,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		blogs:    blogs,
		comments: comments,
		logger:   componentLogger(logger, "post_service"),
	}
}

// List returns one page of all posts.
func (s *PostService) List(ctx context.Context, f query.Filter) (*query.Paginator[view.Post], error) {
	return query.List(ctx, s.posts, query.PostProperties, query.MatchAll{}, f, view.FromPost)
}

// Get returns store.ErrPostNotFound when the post does not exist.
func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// Create adds a post to the blog named by in.BlogID. An unknown blog is a
// field error on blogId.
func (s *PostService) Create(ctx context.Context, in PostInput) (*domain.Post, error) {
	blog, err := s.referencedBlog(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	return createPost(ctx, s.posts, s.logger, blog, in.PostContent)
}

// Update replaces the writable fields of a post and re-snapshots the name of
// the referenced blog.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, in PostInput) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	blog, err := s.referencedBlog(ctx, in.BlogID)
	if err != nil {
		return err
	}

	post.Title = in.Title
	post.ShortDescription = in.ShortDescription
	post.Content = in.Content
	post.MoveTo(blog)
	if err := post.Validate(); err != nil {
		return err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// Delete removes a post. Its comments are left in place.
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.logger.Info("post deleted", "post_id", id)
	return nil
}

// ListComments returns one page of the comments of postID. The post must
// exist; otherwise store.ErrPostNotFound is returned and nothing is listed.
func (s *PostService) ListComments(ctx context.Context, postID uuid.UUID, f query.Filter) (*query.Paginator[view.Comment], error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	pred := query.FieldEquals{Field: query.PathCommentPostID, Value: postID.String()}
	return query.List(ctx, s.comments, query.CommentProperties, pred, f, view.FromComment)
}

// CreateComment adds a comment by user to postID.
func (s *PostService) CreateComment(ctx context.Context, postID uuid.UUID, user *domain.User, content string) (*domain.Comment, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(post.ID, content, user)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error("failed to create comment", "error", err, "post_id", post.ID)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	s.logger.Info("comment created", "comment_id", comment.ID, "post_id", post.ID)
	return comment, nil
}

func (s *PostService) referencedBlog(ctx context.Context, rawID string) (*domain.Blog, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domain.NewValidationError("blogId", "blog not found")
	}
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewValidationError("blogId", "blog not found")
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}
