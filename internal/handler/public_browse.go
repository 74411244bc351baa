package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/repository"
)

// relatedEventCap bounds the related-events strip on event pages.
const relatedEventCap = 4

// BrowseHandler serves the public read-only endpoints: events, posts
// and authors.  No authentication is required; responses are cacheable
// and carry both language variants so the client renders either
// without a second round trip.
type BrowseHandler struct {
	Events  *repository.EventRepo
	Posts   *repository.PostRepo
	Authors *repository.AuthorRepo
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(events *repository.EventRepo, posts *repository.PostRepo, authors *repository.AuthorRepo) *BrowseHandler {
	if events == nil || posts == nil || authors == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{Events: events, Posts: posts, Authors: authors}
}

// ListEvents handles GET /api/events.  Optional query parameters:
// "category" filters by category, "exclude" drops one event id (used
// by the related-events strip, which is capped at four entries).
func (h *BrowseHandler) ListEvents(c echo.Context) error {
	category := c.QueryParam("category")
	var excludeID uint64
	limit := 0
	if v := c.QueryParam("exclude"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude id"})
		}
		excludeID = id
		limit = relatedEventCap
	}
	events, err := h.Events.ListPublished(c.Request().Context(), category, excludeID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// GetEvent handles GET /api/events/:idOrSlug.  Numeric parameters are
// treated as ids, anything else as a slug.
func (h *BrowseHandler) GetEvent(c echo.Context) error {
	param := c.Param("idOrSlug")
	ctx := c.Request().Context()

	if id, convErr := strconv.ParseUint(param, 10, 64); convErr == nil && id > 0 {
		event, err := h.Events.GetByID(ctx, id)
		if err == nil {
			return c.JSON(http.StatusOK, event)
		}
		if !errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		// fall through to the slug lookup: "2024" could be a slug
	}
	event, err := h.Events.GetBySlug(ctx, param)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, event)
}

// ListPosts handles GET /api/posts, returning published posts only.
func (h *BrowseHandler) ListPosts(c echo.Context) error {
	posts, err := h.Posts.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// GetPost handles GET /api/posts/:id.
func (h *BrowseHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	post, err := h.Posts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, post)
}

// ListAuthors handles GET /api/authors.
func (h *BrowseHandler) ListAuthors(c echo.Context) error {
	authors, err := h.Authors.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"authors": authors})
}
