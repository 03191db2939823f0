package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/bloggers-api/internal/domain"
	"github.com/phrazzld/bloggers-api/internal/store"
)

// CommentService reads comments and lets their authors edit them.
type CommentService struct {
	comments store.CommentStore
	logger   *slog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(comments store.CommentStore, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		logger:   componentLogger(logger, "comment_service"),
	}
}

// Get returns store.ErrCommentNotFound when the comment does not exist.
func (s *CommentService) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// Update replaces the content of a comment owned by userID.
// A missing comment is reported before ownership.
func (s *CommentService) Update(ctx context.Context, id, userID uuid.UUID, content string) error {
	comment, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}

	comment.Content = content
	if err := comment.Validate(); err != nil {
		return err
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// Delete removes a comment owned by userID.
func (s *CommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	s.logger.Info("comment deleted", "comment_id", id, "user_id", userID)
	return nil
}

func (s *CommentService) owned(ctx context.Context, id, userID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !comment.OwnedBy(userID) {
		s.logger.Warn("comment ownership check failed",
			"comment_id", id,
			"user_id", userID,
			"owner_id", comment.CommentatorInfo.UserID)
		return nil, ErrNotOwned
	}
	return comment, nil
}
