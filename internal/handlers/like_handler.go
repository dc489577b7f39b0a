package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/like", h.LikePost, requireAuth)
	g.DELETE("/posts/:id/like", h.UnlikePost, requireAuth)
	g.POST("/comments/:id/like", h.LikeComment, requireAuth)
	g.DELETE("/comments/:id/like", h.UnlikeComment, requireAuth)
}

type likeFunc func(ctx context.Context, userID, targetID uint) (*models.Like, error)
type unlikeFunc func(ctx context.Context, userID, targetID uint) error

func (h *LikeHandler) like(c echo.Context, label, message string, fn likeFunc) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", label)
	if err != nil {
		return err
	}

	like, err := fn(c.Request().Context(), userID, targetID)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, message, echo.Map{"like_id": like.ID})
}

func (h *LikeHandler) unlike(c echo.Context, label, message string, fn unlikeFunc) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", label)
	if err != nil {
		return err
	}

	if err := fn(c.Request().Context(), userID, targetID); err != nil {
		return err
	}
	return success(c, http.StatusOK, message, nil)
}

func (h *LikeHandler) LikePost(c echo.Context) error {
	return h.like(c, "post", "Post liked successfully", h.likeService.LikePost)
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	return h.unlike(c, "post", "Post unliked successfully", h.likeService.UnlikePost)
}

func (h *LikeHandler) LikeComment(c echo.Context) error {
	return h.like(c, "comment", "Comment liked successfully", h.likeService.LikeComment)
}

func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	return h.unlike(c, "comment", "Comment unliked successfully", h.likeService.UnlikeComment)
}
