package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bloggers-api/internal/api/shared"
	"github.com/phrazzld/bloggers-api/internal/platform/logger"
	"github.com/phrazzld/bloggers-api/internal/service"
	"github.com/phrazzld/bloggers-api/internal/view"
)

// BlogHandler serves /blogs and the posts nested under a blog.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: handlerLogger(logger, "blog_handler")}
}

// List handles GET /blogs.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.blogs.List(r.Context(), listFilter(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /blogs/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	blog, err := h.blogs.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view.FromBlog(blog))
}

// Create handles POST /blogs.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BlogRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	blog, err := h.blogs.Create(r.Context(), blogInput(req))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view.FromBlog(blog))
}

// Update handles PUT /blogs/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req BlogRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.blogs.Update(r.Context(), id, blogInput(req)); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /blogs/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := h.blogs.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPosts handles GET /blogs/{blogId}/posts.
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	blogID, err := getPathUUID(r, "blogId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	page, err := h.blogs.ListPosts(r.Context(), blogID, listFilter(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// CreatePost handles POST /blogs/{blogId}/posts.
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	blogID, err := getPathUUID(r, "blogId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req BlogPostRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.blogs.CreatePost(r.Context(), blogID, service.PostContent{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("post created in blog",
		"post_id", post.ID,
		"blog_id", blogID)
	shared.RespondWithJSON(w, r, http.StatusCreated, view.FromPost(post))
}

func blogInput(req BlogRequest) service.BlogInput {
	return service.BlogInput{
		Name:        req.Name,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
	}
}
