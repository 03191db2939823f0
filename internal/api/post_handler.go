package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/service"
	"github.com/phrazzld/bloggers-api/internal/view"
)

// PostHandler serves /posts and the comments nested under a post.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: handlerLogger(logger, "post_handler")}
}

// List handles GET /posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.posts.List(r.Context(), listFilter(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view.FromPost(post))
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.posts.Create(r.Context(), postInput(req))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view.FromPost(post))
}

// Update handles PUT /posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req PostRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.posts.Update(r.Context(), id, postInput(req)); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListComments handles GET /posts/{postId}/comments.
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathUUID(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := h.posts.ListComments(r.Context(), postID, listFilter(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// CreateComment handles POST /posts/{postId}/comments. Requires bearer auth.
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	postID, err := getPathUUID(r, "postId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CommentRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	comment, err := h.posts.CreateComment(r.Context(), postID, user, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view.FromComment(comment))
}

func postInput(req PostRequest) service.PostInput {
	return service.PostInput{
		PostContent: service.PostContent{
			Title:            req.Title,
			ShortDescription: req.ShortDescription,
			Content:          req.Content,
		},
		BlogID: req.BlogID,
	}
}
