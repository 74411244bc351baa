package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/model"
	"github.com/lumapark/venue-booking/internal/repository"
)

// AdminPostHandler is the CMS surface for blog posts.  All routes sit
// behind JWT authentication with the ADMIN role.
type AdminPostHandler struct {
	Posts *repository.PostRepo
}

// NewAdminPostHandler constructs an AdminPostHandler.
func NewAdminPostHandler(posts *repository.PostRepo) *AdminPostHandler {
	if posts == nil {
		panic("nil repository passed to NewAdminPostHandler")
	}
	return &AdminPostHandler{Posts: posts}
}

// postBody is the create/update request shape.  Both language variants
// of every text field are required on create.
type postBody struct {
	Slug      string              `json:"slug"`
	Title     model.LocalizedText `json:"title"`
	Excerpt   model.LocalizedText `json:"excerpt"`
	Body      model.LocalizedText `json:"body"`
	AuthorID  uint64              `json:"author_id"`
	ImagePath string              `json:"image_path"`
	Published bool                `json:"published"`
}

func (b *postBody) validate() string {
	if strings.TrimSpace(b.Slug) == "" {
		return "slug is required"
	}
	if b.Title.TR == "" || b.Title.EN == "" {
		return "title is required in both languages"
	}
	if b.Body.TR == "" || b.Body.EN == "" {
		return "body is required in both languages"
	}
	if b.AuthorID == 0 {
		return "author_id is required"
	}
	return ""
}

// List handles GET /v1/admin/posts, including unpublished drafts.
func (h *AdminPostHandler) List(c echo.Context) error {
	posts, err := h.Posts.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// Create handles POST /v1/admin/posts.
func (h *AdminPostHandler) Create(c echo.Context) error {
	var body postBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p := model.Post{
		Slug:      strings.TrimSpace(body.Slug),
		Title:     body.Title,
		Excerpt:   body.Excerpt,
		Body:      body.Body,
		AuthorID:  body.AuthorID,
		ImagePath: body.ImagePath,
		Published: body.Published,
	}
	if err := h.Posts.Create(c.Request().Context(), &p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/admin/posts/:id.
func (h *AdminPostHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	var body postBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p := model.Post{
		ID:        id,
		Slug:      strings.TrimSpace(body.Slug),
		Title:     body.Title,
		Excerpt:   body.Excerpt,
		Body:      body.Body,
		AuthorID:  body.AuthorID,
		ImagePath: body.ImagePath,
		Published: body.Published,
	}
	if err := h.Posts.Update(c.Request().Context(), &p); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/admin/posts/:id.
func (h *AdminPostHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	if err := h.Posts.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
