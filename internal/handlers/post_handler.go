package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const defaultTopLikedLimit = 10

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes. Reads are public.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/top/liked", h.GetTopLiked)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost, requireAuth)
	g.DELETE("/posts/:id", h.DeletePost, requireAuth)
}

// GetPosts returns one page of the feed, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	posts, total, err := h.postService.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return paginated(c, posts, page, total)
}

// GetTopLiked returns the most liked posts
func (h *PostHandler) GetTopLiked(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultTopLikedLimit)
	if err != nil {
		return err
	}
	if limit < 1 || limit > services.MaxPageLimit {
		return apperrors.Validationf("Limit must be between 1 and %d", services.MaxPageLimit)
	}

	posts, err := h.postService.TopLiked(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return ok(c, posts)
}

// GetPost retrieves a post and its comments
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	post, err := h.postService.Get(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return ok(c, post)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Post created successfully", post)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), postID, userID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Post deleted successfully", nil)
}
