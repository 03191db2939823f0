package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// UserStore implements store.UserStore on a MongoDB collection.
type UserStore struct {
	*collection[domain.User, userDoc]
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore on coll.
func NewUserStore(coll *mongodriver.Collection) *UserStore {
	return &UserStore{&collection[domain.User, userDoc]{
		coll:     coll,
		entity:   "user",
		fields:   userFields,
		notFound: store.ErrUserNotFound,
		toDomain: (*userDoc).toDomain,
	}}
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	return s.insert(ctx, userToDoc(u))
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// GetByLoginOrEmail implements store.UserStore.
func (s *UserStore) GetByLoginOrEmail(ctx context.Context, value string) (*domain.User, error) {
	return s.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "login", Value: value}},
		bson.D{{Key: "email", Value: value}},
	}}})
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetByConfirmationCode implements store.UserStore.
func (s *UserStore) GetByConfirmationCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, store.ErrUserNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "emailConfirmation.confirmationCode", Value: code}})
}

// Update implements store.UserStore.
func (s *UserStore) Update(ctx context.Context, u *domain.User) error {
	return s.replace(ctx, u.ID.String(), userToDoc(u))
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, id.String())
}

// BlogStore implements store.BlogStore on a MongoDB collection.
type BlogStore struct {
	*collection[domain.Blog, blogDoc]
}

var _ store.BlogStore = (*BlogStore)(nil)

// NewBlogStore creates a BlogStore on coll.
func NewBlogStore(coll *mongodriver.Collection) *BlogStore {
	return &BlogStore{&collection[domain.Blog, blogDoc]{
		coll:     coll,
		entity:   "blog",
		fields:   blogFields,
		notFound: store.ErrBlogNotFound,
		toDomain: (*blogDoc).toDomain,
	}}
}

// Create implements store.BlogStore.
func (s *BlogStore) Create(ctx context.Context, b *domain.Blog) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.insert(ctx, blogToDoc(b))
}

// GetByID implements store.BlogStore.
func (s *BlogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// Update implements store.BlogStore. Posts keep their blogName snapshot.
func (s *BlogStore) Update(ctx context.Context, b *domain.Blog) error {
	return s.set(ctx, b.ID.String(), bson.D{
		{Key: "name", Value: b.Name},
		{Key: "description", Value: b.Description},
		{Key: "websiteUrl", Value: b.WebsiteURL},
		{Key: "isMembership", Value: b.IsMembership},
	})
}

// Delete implements store.BlogStore.
func (s *BlogStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, id.String())
}

// PostStore implements store.PostStore on a MongoDB collection.
type PostStore struct {
	*collection[domain.Post, postDoc]
}

var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates a PostStore on coll.
func NewPostStore(coll *mongodriver.Collection) *PostStore {
	return &PostStore{&collection[domain.Post, postDoc]{
		coll:     coll,
		entity:   "post",
		fields:   postFields,
		notFound: store.ErrPostNotFound,
		toDomain: (*postDoc).toDomain,
	}}
}

// Create implements store.PostStore.
func (s *PostStore) Create(ctx context.Context, p *domain.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.insert(ctx, postToDoc(p))
}

// GetByID implements store.PostStore.
func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// Update implements store.PostStore.
func (s *PostStore) Update(ctx context.Context, p *domain.Post) error {
	return s.set(ctx, p.ID.String(), bson.D{
		{Key: "title", Value: p.Title},
		{Key: "shortDescription", Value: p.ShortDescription},
		{Key: "content", Value: p.Content},
		{Key: "blogId", Value: p.BlogID.String()},
		{Key: "blogName", Value: p.BlogName},
	})
}

// Delete implements store.PostStore.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, id.String())
}

// CommentStore implements store.CommentStore on a MongoDB collection.
type CommentStore struct {
	*collection[domain.Comment, commentDoc]
}

var _ store.CommentStore = (*CommentStore)(nil)

// NewCommentStore creates a CommentStore on coll.
func NewCommentStore(coll *mongodriver.Collection) *CommentStore {
	return &CommentStore{&collection[domain.Comment, commentDoc]{
		coll:     coll,
		entity:   "comment",
		fields:   commentFields,
		notFound: store.ErrCommentNotFound,
		toDomain: (*commentDoc).toDomain,
	}}
}

// Create implements store.CommentStore.
func (s *CommentStore) Create(ctx context.Context, c *domain.Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.insert(ctx, commentToDoc(c))
}

// GetByID implements store.CommentStore.
func (s *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// Update implements store.CommentStore. Only the content is mutable.
func (s *CommentStore) Update(ctx context.Context, c *domain.Comment) error {
	return s.set(ctx, c.ID.String(), bson.D{{Key: "content", Value: c.Content}})
}

// Delete implements store.CommentStore.
func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, id.String())
}
