package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/platform/logger"
	"github.com/phrazzld/bloggers-api/internal/service"
	"github.com/phrazzld/bloggers-api/internal/view"
)

// CommentHandler serves /comments.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: handlerLogger(logger, "comment_handler")}
}

// Get handles GET /comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view.FromComment(comment))
}

// Update handles PUT /comments/{id}. Only the author may edit.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CommentRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.comments.Update(r.Context(), id, user.ID, req.Content); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /comments/{id}. Only the author may delete.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.comments.Delete(r.Context(), id, user.ID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("comment deleted via api",
		"comment_id", id,
		"user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}
