package domain

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a named publication that owns posts.
type Blog struct {
	ID           uuid.UUID
	Name         string
	Description  string
	WebsiteURL   string
	CreatedAt    time.Time
	IsMembership bool
}

// NewBlog creates a Blog. Membership is always off for new blogs.
func NewBlog(name, description, websiteURL string) (*Blog, error) {
	blog := &Blog{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		WebsiteURL:  websiteURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := blog.Validate(); err != nil {
		return nil, err
	}

	return blog, nil
}

// Validate checks required fields.
func (b *Blog) Validate() error {
	verr := &ValidationError{}
	if b.ID == uuid.Nil {
		verr.Add("id", "id is required")
	}
	if b.Name == "" {
		verr.Add("name", "name is required")
	}
	if b.Description == "" {
		verr.Add("description", "description is required")
	}
	if b.WebsiteURL == "" {
		verr.Add("websiteUrl", "websiteUrl is required")
	}
	return verr.Err()
}
