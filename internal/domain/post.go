package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post belongs to a blog. BlogName is a snapshot of the blog's name taken when
// the post was created or last updated; renaming the blog does not touch it.
type Post struct {
	ID               uuid.UUID
	Title            string
	ShortDescription string
	Content          string
	BlogID           uuid.UUID
	BlogName         string
	CreatedAt        time.Time
}

// NewPost creates a Post inside blog.
func NewPost(title, shortDescription, content string, blog *Blog) (*Post, error) {
	if blog == nil {
		return nil, NewValidationError("blogId", "blog is required")
	}

	post := &Post{
		ID:               uuid.New(),
		Title:            title,
		ShortDescription: shortDescription,
		Content:          content,
		BlogID:           blog.ID,
		BlogName:         blog.Name,
		CreatedAt:        time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// MoveTo points the post at blog and re-snapshots its name.
func (p *Post) MoveTo(blog *Blog) {
	p.BlogID = blog.ID
	p.BlogName = blog.Name
}

// Validate checks required fields.
func (p *Post) Validate() error {
	verr := &ValidationError{}
	if p.ID == uuid.Nil {
		verr.Add("id", "id is required")
	}
	if p.Title == "" {
		verr.Add("title", "title is required")
	}
	if p.ShortDescription == "" {
		verr.Add("shortDescription", "shortDescription is required")
	}
	if p.Content == "" {
		verr.Add("content", "content is required")
	}
	if p.BlogID == uuid.Nil {
		verr.Add("blogId", "blogId is required")
	}
	return verr.Err()
}
