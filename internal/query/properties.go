package query

import (
	"errors"
	"fmt"
)

// ErrInvalidSortField is returned when a sortBy key has no PropertyMap entry.
var ErrInvalidSortField = errors.New("invalid sort field")

// SortFieldError reports which sortBy value could not be resolved.
type SortFieldError struct {
	Value string
}

// Error implements the error interface.
func (e *SortFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidSortField, e.Value)
}

// Unwrap returns ErrInvalidSortField so callers can use errors.Is.
func (e *SortFieldError) Unwrap() error {
	return ErrInvalidSortField
}

// PropertyMap maps logical sort keys, as clients send them in sortBy, to
// storage paths. Paths are dotted for nested fields.
type PropertyMap map[string]string

// Resolve returns the storage path for sortBy or a *SortFieldError.
func (m PropertyMap) Resolve(sortBy string) (string, error) {
	path, ok := m[sortBy]
	if !ok || path == "" {
		return "", &SortFieldError{Value: sortBy}
	}
	return path, nil
}

// Storage paths shared by the entity maps below. Backends map these paths to
// columns or document fields.
const (
	PathID        = "id"
	PathCreatedAt = "createdAt"

	PathUserLogin = "login"
	PathUserEmail = "email"

	PathBlogName         = "name"
	PathBlogDescription  = "description"
	PathBlogWebsiteURL   = "websiteUrl"
	PathBlogIsMembership = "isMembership"

	PathPostTitle            = "title"
	PathPostShortDescription = "shortDescription"
	PathPostContent          = "content"
	PathPostBlogID           = "blogId"
	PathPostBlogName         = "blogName"

	PathCommentContent   = "content"
	PathCommentPostID    = "postId"
	PathCommentUserID    = "commentatorInfo.userId"
	PathCommentUserLogin = "commentatorInfo.userLogin"
)

// UserProperties are the sortable fields of users.
var UserProperties = PropertyMap{
	"id":        PathID,
	"login":     PathUserLogin,
	"email":     PathUserEmail,
	"createdAt": PathCreatedAt,
}

// BlogProperties are the sortable fields of blogs.
var BlogProperties = PropertyMap{
	"id":           PathID,
	"name":         PathBlogName,
	"description":  PathBlogDescription,
	"websiteUrl":   PathBlogWebsiteURL,
	"createdAt":    PathCreatedAt,
	"isMembership": PathBlogIsMembership,
}

// PostProperties are the sortable fields of posts.
var PostProperties = PropertyMap{
	"id":               PathID,
	"title":            PathPostTitle,
	"shortDescription": PathPostShortDescription,
	"content":          PathPostContent,
	"blogId":           PathPostBlogID,
	"blogName":         PathPostBlogName,
	"createdAt":        PathCreatedAt,
}

// CommentProperties are the sortable fields of comments. Commentator fields
// are accepted both by their short name and by their nested path.
var CommentProperties = PropertyMap{
	"id":                        PathID,
	"content":                   PathCommentContent,
	"createdAt":                 PathCreatedAt,
	"userId":                    PathCommentUserID,
	"userLogin":                 PathCommentUserLogin,
	"commentatorInfo.userId":    PathCommentUserID,
	"commentatorInfo.userLogin": PathCommentUserLogin,
}
