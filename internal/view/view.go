// Package view projects domain entities into the JSON shapes returned by the
// HTTP API. Projectors are the only place entities are turned into output, so
// password hashes and confirmation data cannot leak past them.
package view

import (
	"time"

	"github.com/phrazzld/bloggers-api/internal/domain"
)

// TimeLayout is the ISO-8601 UTC layout with millisecond precision used for
// every timestamp in API output.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t in TimeLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// User is the admin-facing user representation.
type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Me is the representation of the authenticated caller.
type Me struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
	Email  string `json:"email"`
}

// Blog is the public blog representation.
type Blog struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	WebsiteURL   string `json:"websiteUrl"`
	CreatedAt    string `json:"createdAt"`
	IsMembership bool   `json:"isMembership"`
}

// Post is the public post representation.
type Post struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           string `json:"blogId"`
	BlogName         string `json:"blogName"`
	CreatedAt        string `json:"createdAt"`
}

// CommentatorInfo identifies a comment's author.
type CommentatorInfo struct {
	UserID    string `json:"userId"`
	UserLogin string `json:"userLogin"`
}

// Comment is the public comment representation.
type Comment struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"`
	CommentatorInfo CommentatorInfo `json:"commentatorInfo"`
	CreatedAt       string          `json:"createdAt"`
}

// FromUser projects a user.
func FromUser(u *domain.User) User {
	return User{
		ID:        u.ID.String(),
		Login:     u.Login,
		Email:     u.Email,
		CreatedAt: Timestamp(u.CreatedAt),
	}
}

// FromMe projects the authenticated user.
func FromMe(u *domain.User) Me {
	return Me{
		UserID: u.ID.String(),
		Login:  u.Login,
		Email:  u.Email,
	}
}

// FromBlog projects a blog.
func FromBlog(b *domain.Blog) Blog {
	return Blog{
		ID:           b.ID.String(),
		Name:         b.Name,
		Description:  b.Description,
		WebsiteURL:   b.WebsiteURL,
		CreatedAt:    Timestamp(b.CreatedAt),
		IsMembership: b.IsMembership,
	}
}

// FromPost projects a post.
func FromPost(p *domain.Post) Post {
	return Post{
		ID:               p.ID.String(),
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		BlogID:           p.BlogID.String(),
		BlogName:         p.BlogName,
		CreatedAt:        Timestamp(p.CreatedAt),
	}
}

// FromComment projects a comment. The post id is internal and not exposed.
func FromComment(c *domain.Comment) Comment {
	return Comment{
		ID:      c.ID.String(),
		Content: c.Content,
		CommentatorInfo: CommentatorInfo{
			UserID:    c.CommentatorInfo.UserID.String(),
			UserLogin: c.CommentatorInfo.UserLogin,
		},
		CreatedAt: Timestamp(c.CreatedAt),
	}
}
