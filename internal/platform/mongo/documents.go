package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/query"
)

// BSON stores milliseconds; truncate before writing so reads round-trip.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", field, domain.ErrInvalidID)
	}
	return id, nil
}

type emailConfirmationDoc struct {
	ConfirmationCode string    `bson:"confirmationCode"`
	ExpirationDate   time.Time `bson:"expirationDate"`
	IsConfirmed      bool      `bson:"isConfirmed"`
}

type userDoc struct {
	ID                string               `bson:"_id"`
	Login             string               `bson:"login"`
	Email             string               `bson:"email"`
	PasswordHash      string               `bson:"passwordHash"`
	CreatedAt         time.Time            `bson:"createdAt"`
	EmailConfirmation emailConfirmationDoc `bson:"emailConfirmation"`
}

var userFields = fieldSet{
	query.PathID:        true,
	query.PathUserLogin: true,
	query.PathUserEmail: true,
	query.PathCreatedAt: true,
}

func userToDoc(u *domain.User) *userDoc {
	return &userDoc{
		ID:           u.ID.String(),
		Login:        u.Login,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    toMS(u.CreatedAt),
		EmailConfirmation: emailConfirmationDoc{
			ConfirmationCode: u.EmailConfirmation.ConfirmationCode,
			ExpirationDate:   toMS(u.EmailConfirmation.ExpirationDate),
			IsConfirmed:      u.EmailConfirmation.IsConfirmed,
		},
	}
}

func (d *userDoc) toDomain() (*domain.User, error) {
	id, err := parseID("_id", d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           id,
		Login:        d.Login,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		EmailConfirmation: domain.EmailConfirmation{
			ConfirmationCode: d.EmailConfirmation.ConfirmationCode,
			ExpirationDate:   d.EmailConfirmation.ExpirationDate.UTC(),
			IsConfirmed:      d.EmailConfirmation.IsConfirmed,
		},
	}, nil
}

type blogDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Description  string    `bson:"description"`
	WebsiteURL   string    `bson:"websiteUrl"`
	CreatedAt    time.Time `bson:"createdAt"`
	IsMembership bool      `bson:"isMembership"`
}

var blogFields = fieldSet{
	query.PathID:               true,
	query.PathBlogName:         true,
	query.PathBlogDescription:  true,
	query.PathBlogWebsiteURL:   true,
	query.PathBlogIsMembership: true,
	query.PathCreatedAt:        true,
}

func blogToDoc(b *domain.Blog) *blogDoc {
	return &blogDoc{
		ID:           b.ID.String(),
		Name:         b.Name,
		Description:  b.Description,
		WebsiteURL:   b.WebsiteURL,
		CreatedAt:    toMS(b.CreatedAt),
		IsMembership: b.IsMembership,
	}
}

func (d *blogDoc) toDomain() (*domain.Blog, error) {
	id, err := parseID("_id", d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Blog{
		ID:           id,
		Name:         d.Name,
		Description:  d.Description,
		WebsiteURL:   d.WebsiteURL,
		CreatedAt:    d.CreatedAt.UTC(),
		IsMembership: d.IsMembership,
	}, nil
}

type postDoc struct {
	ID               string    `bson:"_id"`
	Title            string    `bson:"title"`
	ShortDescription string    `bson:"shortDescription"`
	Content          string    `bson:"content"`
	BlogID           string    `bson:"blogId"`
	BlogName         string    `bson:"blogName"`
	CreatedAt        time.Time `bson:"createdAt"`
}

var postFields = fieldSet{
	query.PathID:                   true,
	query.PathPostTitle:            true,
	query.PathPostShortDescription: true,
	query.PathPostContent:          true,
	query.PathPostBlogID:           true,
	query.PathPostBlogName:         true,
	query.PathCreatedAt:            true,
}

func postToDoc(p *domain.Post) *postDoc {
	return &postDoc{
		ID:               p.ID.String(),
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		BlogID:           p.BlogID.String(),
		BlogName:         p.BlogName,
		CreatedAt:        toMS(p.CreatedAt),
	}
}

func (d *postDoc) toDomain() (*domain.Post, error) {
	id, err := parseID("_id", d.ID)
	if err != nil {
		return nil, err
	}
	blogID, err := parseID("blogId", d.BlogID)
	if err != nil {
		return nil, err
	}
	return &domain.Post{
		ID:               id,
		Title:            d.Title,
		ShortDescription: d.ShortDescription,
		Content:          d.Content,
		BlogID:           blogID,
		BlogName:         d.BlogName,
		CreatedAt:        d.CreatedAt.UTC(),
	}, nil
}

type commentatorInfoDoc struct {
	UserID    string `bson:"userId"`
	UserLogin string `bson:"userLogin"`
}

type commentDoc struct {
	ID              string             `bson:"_id"`
	PostID          string             `bson:"postId"`
	Content         string             `bson:"content"`
	CommentatorInfo commentatorInfoDoc `bson:"commentatorInfo"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

var commentFields = fieldSet{
	query.PathID:               true,
	query.PathCommentContent:   true,
	query.PathCommentPostID:    true,
	query.PathCommentUserID:    true,
	query.PathCommentUserLogin: true,
	query.PathCreatedAt:        true,
}

func commentToDoc(c *domain.Comment) *commentDoc {
	return &commentDoc{
		ID:      c.ID.String(),
		PostID:  c.PostID.String(),
		Content: c.Content,
		CommentatorInfo: commentatorInfoDoc{
			UserID:    c.CommentatorInfo.UserID.String(),
			UserLogin: c.CommentatorInfo.UserLogin,
		},
		CreatedAt: toMS(c.CreatedAt),
	}
}

func (d *commentDoc) toDomain() (*domain.Comment, error) {
	id, err := parseID("_id", d.ID)
	if err != nil {
		return nil, err
	}
	postID, err := parseID("postId", d.PostID)
	if err != nil {
		return nil, err
	}
	userID, err := parseID("commentatorInfo.userId", d.CommentatorInfo.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.Comment{
		ID:      id,
		PostID:  postID,
		Content: d.Content,
		CommentatorInfo: domain.CommentatorInfo{
			UserID:    userID,
			UserLogin: d.CommentatorInfo.UserLogin,
		},
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}
