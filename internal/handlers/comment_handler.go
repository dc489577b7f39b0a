package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/comments", h.CreateComment, requireAuth)
	g.POST("/comments/:id/reply", h.ReplyToComment, requireAuth)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.AddComment(c.Request().Context(), postID, userID, req.Content)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Comment added successfully", comment)
}

// ReplyToComment adds a reply under an existing comment
func (h *CommentHandler) ReplyToComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "id", "comment")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reply, err := h.commentService.Reply(c.Request().Context(), commentID, userID, req.Content)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Reply added successfully", reply)
}
