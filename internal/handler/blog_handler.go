package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/service"
)

// BlogHandler handles post endpoints. Every method runs behind WithUser.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// PostRequest represents a post create or update form.
type PostRequest struct {
	Title   string `form:"title" json:"title" validate:"required"`
	Content string `form:"content" json:"content" validate:"required"`
}

// NewPage renders the post creation form.
func (h *BlogHandler) NewPage(c echo.Context, user *model.User) error {
	return c.Render(http.StatusOK, "blog", echo.Map{"User": user})
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Success 302 {string} string "redirect to /viewBlog"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /blog [post]
func (h *BlogHandler) Create(c echo.Context, user *model.User) error {
	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.blogService.Create(c.Request().Context(), user, req.Title, req.Content); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/viewBlog")
}

// List godoc
// @Summary List the caller's posts
// @Tags posts
// @Produce html
// @Success 200 {string} string "post list page"
// @Failure 500 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /viewBlog [get]
func (h *BlogHandler) List(c echo.Context, user *model.User) error {
	posts, err := h.blogService.ListByAuthor(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "viewBlog", echo.Map{"User": user, "Posts": posts})
}

// EditPage godoc
// @Summary Render the edit form of an owned post
// @Tags posts
// @Produce html
// @Param id path string true "Post ID"
// @Success 200 {string} string "edit page"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /edit/{id} [get]
func (h *BlogHandler) EditPage(c echo.Context, user *model.User) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	post, err := h.blogService.GetOwned(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit", echo.Map{"User": user, "Post": post})
}

// Update godoc
// @Summary Update title and content of an owned post
// @Description Browsers send POST with _method=PUT.
// @Tags posts
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param id path string true "Post ID"
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Success 302 {string} string "redirect to /viewBlog"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /viewBlog/{id} [put]
func (h *BlogHandler) Update(c echo.Context, user *model.User) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.blogService.Update(c.Request().Context(), user, id, req.Title, req.Content); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/viewBlog")
}

// Delete godoc
// @Summary Delete an owned post
// @Description Browsers send POST with _method=DELETE.
// @Tags posts
// @Produce plain
// @Param id path string true "Post ID"
// @Success 302 {string} string "redirect to /viewBlog"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /viewBlog/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context, user *model.User) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.blogService.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/viewBlog")
}

// postID parses the :id path parameter. An id that is not a uuid cannot name a post.
func postID(c echo.Context) (uuid.UUID, error) {
	id, err := auth.ParseID(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrPostNotFound
	}
	return id, nil
}
