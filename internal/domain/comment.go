package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentatorInfo identifies the author of a comment. UserLogin is captured
// at creation time.
type CommentatorInfo struct {
	UserID    uuid.UUID
	UserLogin string
}

// Comment is a user's reply to a post.
type Comment struct {
	ID              uuid.UUID
	PostID          uuid.UUID
	Content         string
	CommentatorInfo CommentatorInfo
	CreatedAt       time.Time
}

// NewComment creates a Comment on postID authored by user.
func NewComment(postID uuid.UUID, content string, user *User) (*Comment, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	comment := &Comment{
		ID:      uuid.New(),
		PostID:  postID,
		Content: content,
		CommentatorInfo: CommentatorInfo{
			UserID:    user.ID,
			UserLogin: user.Login,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// OwnedBy reports whether userID authored the comment.
func (c *Comment) OwnedBy(userID uuid.UUID) bool {
	return c.CommentatorInfo.UserID == userID
}

// Validate checks required fields.
func (c *Comment) Validate() error {
	verr := &ValidationError{}
	if c.ID == uuid.Nil {
		verr.Add("id", "id is required")
	}
	if c.PostID == uuid.Nil {
		verr.Add("postId", "postId is required")
	}
	if c.Content == "" {
		verr.Add("content", "content is required")
	}
	if c.CommentatorInfo.UserID == uuid.Nil {
		verr.Add("commentatorInfo.userId", "userId is required")
	}
	return verr.Err()
}
