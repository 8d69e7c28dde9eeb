package blogs

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/auth"
)

// BlogHandler provides HTTP handlers for blog posts.
type BlogHandler struct {
	service *BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// RegisterRoutes registers the blog routes. The caller mounts them under
// /api/blogs.
func (h *BlogHandler) RegisterRoutes(router chi.Router) {
	router.Method(http.MethodGet, "/", h.listBlogs())
	router.Method(http.MethodPost, "/", h.createBlog())
	router.Method(http.MethodGet, "/stats", h.blogStats())
	router.Method(http.MethodGet, "/{id}", h.getBlog())
	router.Method(http.MethodPut, "/{id}", h.updateBlog())
	router.Method(http.MethodDelete, "/{id}", h.deleteBlog())
}

// blogID reads the {id} path parameter. Ids are UUIDs; anything else is a
// cast error rather than a miss.
func blogID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperror.NewCastError(err)
	}
	return id.String(), nil
}

// listBlogs godoc
// @Summary List blogs
// @Description Returns every blog with its creator expanded under "user".
// @Tags blogs
// @Produce json
// @Success 200 {array} model.Blog
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /blogs [get]
func (h *BlogHandler) listBlogs() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		blogs, err := h.service.List(r.Context())
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusOK, blogs)
		return nil
	}
}

// getBlog godoc
// @Summary Get a blog
// @Tags blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} model.Blog
// @Failure 400 {object} apperror.ErrorResponse "Malformatted id"
// @Failure 404 "Not Found"
// @Router /blogs/{id} [get]
func (h *BlogHandler) getBlog() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := blogID(r)
		if err != nil {
			return err
		}
		blog, err := h.service.Get(r.Context(), id)
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusOK, blog)
		return nil
	}
}

// createBlog godoc
// @Summary Create a blog
// @Description Creates a blog owned by the authenticated user.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blog body blogs.CreateBlogRequest true "Blog to create"
// @Success 201 {object} model.Blog
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Missing title or url"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Token missing or invalid"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /blogs [post]
func (h *BlogHandler) createBlog() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		defer r.Body.Close()

		caller, err := auth.RequireIdentity(r.Context())
		if err != nil {
			return err
		}

		var req CreateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apperror.NewBadRequestError("invalid request body: "+err.Error(), err)
		}

		blog, err := h.service.Create(r.Context(), caller, req)
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusCreated, blog)
		return nil
	}
}

// updateBlog godoc
// @Summary Update a blog
// @Description Partially updates a blog. Omitted fields keep their values.
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Blog ID"
// @Param blog body blogs.UpdateBlogRequest true "Fields to change"
// @Success 200 {object} model.Blog
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Malformatted id or invalid fields"
// @Failure 404 "Not Found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /blogs/{id} [put]
func (h *BlogHandler) updateBlog() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		defer r.Body.Close()

		id, err := blogID(r)
		if err != nil {
			return err
		}

		var req UpdateBlogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apperror.NewBadRequestError("invalid request body: "+err.Error(), err)
		}
		upd, err := req.toUpdate()
		if err != nil {
			return err
		}

		blog, err := h.service.Update(r.Context(), id, upd)
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusOK, blog)
		return nil
	}
}

// deleteBlog godoc
// @Summary Delete a blog
// @Description Deletes a blog. Only the user who created it may delete it.
// @Tags blogs
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 204 "No Content"
// @Failure 400 {object} apperror.ErrorResponse "Malformatted id"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Token missing or invalid"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - Not the creator"
// @Failure 404 "Not Found"
// @Router /blogs/{id} [delete]
func (h *BlogHandler) deleteBlog() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := blogID(r)
		if err != nil {
			return err
		}
		caller, err := auth.RequireIdentity(r.Context())
		if err != nil {
			return err
		}
		if err := h.service.Delete(r.Context(), caller, id); err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusNoContent, nil)
		return nil
	}
}

// blogStats godoc
// @Summary Blog statistics
// @Description Total likes, favourite blog and the most prolific and most liked authors.
// @Tags blogs
// @Produce json
// @Success 200 {object} stats.Summary
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /blogs/stats [get]
func (h *BlogHandler) blogStats() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		summary, err := h.service.Stats(r.Context())
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusOK, summary)
		return nil
	}
}
