package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles friend requests and the friends list
type FriendshipHandler struct {
	friendService services.FriendService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendService services.FriendService) *FriendshipHandler {
	return &FriendshipHandler{friendService: friendService}
}

// RegisterFriendshipRoutes registers friendship-related routes; the group
// is expected to require authentication.
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.GET("", h.GetFriends)
	g.GET("/requests", h.GetFriendRequests)
	g.POST("/request", h.SendFriendRequest)
	g.POST("/:id/accept", h.AcceptFriendRequest)
	g.DELETE("/:id", h.RemoveFriend)
}

func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	friends, err := h.friendService.ListFriends(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, friends)
}

func (h *FriendshipHandler) GetFriendRequests(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	requests, err := h.friendService.ListRequests(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, requests)
}

func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.FriendRequestBody
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	friendship, err := h.friendService.SendRequest(c.Request().Context(), userID, req.RecipientID)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Friend request sent", echo.Map{"friendship_id": friendship.ID})
}

func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	friendshipID, err := parseIDParam(c, "id", "friendship")
	if err != nil {
		return err
	}

	if _, err := h.friendService.Accept(c.Request().Context(), friendshipID, userID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Friend request accepted", nil)
}

func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	friendshipID, err := parseIDParam(c, "id", "friendship")
	if err != nil {
		return err
	}

	if err := h.friendService.Remove(c.Request().Context(), friendshipID, userID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Friend removed successfully", nil)
}
