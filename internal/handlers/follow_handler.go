package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followerService services.FollowerService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followerService services.FollowerService) *FollowHandler {
	return &FollowHandler{followerService: followerService}
}

// RegisterFollowRoutes registers follow-related routes. Lists and stats are public.
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/:userId/follow", h.FollowUser, requireAuth)
	g.DELETE("/:userId/unfollow", h.UnfollowUser, requireAuth)
	g.GET("/:userId/check", h.CheckFollowing, requireAuth)
	g.GET("/:userId/stats", h.GetStats)
	g.GET("/:userId/followers", h.GetFollowers)
	g.GET("/:userId/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	if err := h.followerService.Follow(c.Request().Context(), currentUserID, targetID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Successfully followed user", nil)
}

// UnfollowUser removes a follow edge
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	if err := h.followerService.Unfollow(c.Request().Context(), currentUserID, targetID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Successfully unfollowed user", nil)
}

func (h *FollowHandler) CheckFollowing(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	following, err := h.followerService.IsFollowing(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"isFollowing": following})
}

func (h *FollowHandler) GetStats(c echo.Context) error {
	userID, err := parseIDParam(c, "userId", "user")
	if err != nil {
		return err
	}
	stats, err := h.followerService.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, stats)
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseIDParam(c, "userId", "user")
	if err != nil {
		return err
	}
	followers, err := h.followerService.Followers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, followers)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseIDParam(c, "userId", "user")
	if err != nil {
		return err
	}
	following, err := h.followerService.Following(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, following)
}
