package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// UserStore implements store.UserStore in memory.
type UserStore struct {
	*table[domain.User]
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{newTable("user", store.ErrUserNotFound,
		func(u *domain.User) uuid.UUID { return u.ID },
		userField)}
}

func userField(u *domain.User, path string) (any, bool) {
	switch path {
	case query.PathID:
		return u.ID, true
	case query.PathUserLogin:
		return u.Login, true
	case query.PathUserEmail:
		return u.Email, true
	case query.PathCreatedAt:
		return u.CreatedAt, true
	default:
		return nil, false
	}
}

func uniqueUser(u *domain.User) func(*domain.User) error {
	return func(existing *domain.User) error {
		if existing.Login == u.Login {
			return store.ErrLoginExists
		}
		if existing.Email == u.Email {
			return store.ErrEmailExists
		}
		return nil
	}
}

// Create implements store.UserStore.
func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", err)
	}
	return s.insert(*user, uniqueUser(user))
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return s.get(id)
}

// GetByLoginOrEmail implements store.UserStore.
func (s *UserStore) GetByLoginOrEmail(_ context.Context, value string) (*domain.User, error) {
	return s.first(func(u *domain.User) bool {
		return u.Login == value || u.Email == value
	})
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.first(func(u *domain.User) bool {
		return u.Email == email
	})
}

// GetByConfirmationCode implements store.UserStore.
func (s *UserStore) GetByConfirmationCode(_ context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, store.ErrUserNotFound
	}
	return s.first(func(u *domain.User) bool {
		return u.EmailConfirmation.ConfirmationCode == code
	})
}

// Update implements store.UserStore.
func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	return s.replace(*user, uniqueUser(user))
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	return s.remove(id)
}

// BlogStore implements store.BlogStore in memory.
type BlogStore struct {
	*table[domain.Blog]
}

var _ store.BlogStore = (*BlogStore)(nil)

// NewBlogStore creates an empty BlogStore.
func NewBlogStore() *BlogStore {
	return &BlogStore{newTable("blog", store.ErrBlogNotFound,
		func(b *domain.Blog) uuid.UUID { return b.ID },
		blogField)}
}

func blogField(b *domain.Blog, path string) (any, bool) {
	switch path {
	case query.PathID:
		return b.ID, true
	case query.PathBlogName:
		return b.Name, true
	case query.PathBlogDescription:
		return b.Description, true
	case query.PathBlogWebsiteURL:
		return b.WebsiteURL, true
	case query.PathBlogIsMembership:
		return b.IsMembership, true
	case query.PathCreatedAt:
		return b.CreatedAt, true
	default:
		return nil, false
	}
}

// Create implements store.BlogStore.
func (s *BlogStore) Create(_ context.Context, blog *domain.Blog) error {
	if err := blog.Validate(); err != nil {
		return store.NewStoreError("blog", "create", "invalid blog", err)
	}
	return s.insert(*blog, nil)
}

// GetByID implements store.BlogStore.
func (s *BlogStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Blog, error) {
	return s.get(id)
}

// Update implements store.BlogStore.
func (s *BlogStore) Update(_ context.Context, blog *domain.Blog) error {
	return s.replace(*blog, nil)
}

// Delete implements store.BlogStore.
func (s *BlogStore) Delete(_ context.Context, id uuid.UUID) error {
	return s.remove(id)
}

// PostStore implements store.PostStore in memory.
type PostStore struct {
	*table[domain.Post]
}

var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates an empty PostStore.
func NewPostStore() *PostStore {
	return &PostStore{newTable("post", store.ErrPostNotFound,
		func(p *domain.Post) uuid.UUID { return p.ID },
		postField)}
}

func postField(p *domain.Post, path string) (any, bool) {
	switch path {
	case query.PathID:
		return p.ID, true
	case query.PathPostTitle:
		return p.Title, true
	case query.PathPostShortDescription:
		return p.ShortDescription, true
	case query.PathPostContent:
		return p.Content, true
	case query.PathPostBlogID:
		return p.BlogID, true
	case query.PathPostBlogName:
		return p.BlogName, true
	case query.PathCreatedAt:
		return p.CreatedAt, true
	default:
		return nil, false
	}
}

// Create implements store.PostStore.
func (s *PostStore) Create(_ context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return store.NewStoreError("post", "create", "invalid post", err)
	}
	return s.insert(*post, nil)
}

// GetByID implements store.PostStore.
func (s *PostStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.get(id)
}

// Update implements store.PostStore.
func (s *PostStore) Update(_ context.Context, post *domain.Post) error {
	return s.replace(*post, nil)
}

// Delete implements store.PostStore.
func (s *PostStore) Delete(_ context.Context, id uuid.UUID) error {
	return s.remove(id)
}

// CommentStore implements store.CommentStore in memory.
type CommentStore struct {
	*table[domain.Comment]
}

var _ store.CommentStore = (*CommentStore)(nil)

// NewCommentStore creates an empty CommentStore.
func NewCommentStore() *CommentStore {
	return &CommentStore{newTable("comment", store.ErrCommentNotFound,
		func(c *domain.Comment) uuid.UUID { return c.ID },
		commentField)}
}

func commentField(c *domain.Comment, path string) (any, bool) {
	switch path {
	case query.PathID:
		return c.ID, true
	case query.PathCommentContent:
		return c.Content, true
	case query.PathCommentPostID:
		return c.PostID, true
	case query.PathCommentUserID:
		return c.CommentatorInfo.UserID, true
	case query.PathCommentUserLogin:
		return c.CommentatorInfo.UserLogin, true
	case query.PathCreatedAt:
		return c.CreatedAt, true
	default:
		return nil, false
	}
}

// Create implements store.CommentStore.
func (s *CommentStore) Create(_ context.Context, comment *domain.Comment) error {
	if err := comment.Validate(); err != nil {
		return store.NewStoreError("comment", "create", "invalid comment", err)
	}
	return s.insert(*comment, nil)
}

// GetByID implements store.CommentStore.
func (s *CommentStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.get(id)
}

// Update implements store.CommentStore.
func (s *CommentStore) Update(_ context.Context, comment *domain.Comment) error {
	return s.replace(*comment, nil)
}

// Delete implements store.CommentStore.
func (s *CommentStore) Delete(_ context.Context, id uuid.UUID) error {
	return s.remove(id)
}

// Cleaner empties every memory store it was built with.
type Cleaner struct {
	clearers []interface{ clear() }
}

var _ store.Cleaner = (*Cleaner)(nil)

// DeleteAll implements store.Cleaner.
func (c *Cleaner) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, t := range c.clearers {
		t.clear()
	}
	return nil
}

// NewStores wires a fresh set of memory stores.
func NewStores() store.Stores {
	users := NewUserStore()
	blogs := NewBlogStore()
	posts := NewPostStore()
	comments := NewCommentStore()

	return store.Stores{
		Users:    users,
		Blogs:    blogs,
		Posts:    posts,
		Comments: comments,
		Cleaner:  &Cleaner{clearers: []interface{ clear() }{users, blogs, posts, comments}},
	}
}
