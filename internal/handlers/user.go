package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user profile routes. Only the picture
// update requires authentication.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/search", h.SearchUsers)
	g.GET("/:id", h.GetUser)
	g.GET("/:id/posts", h.GetUserPosts)
	g.PUT("/:id/profile-picture", h.UpdateProfilePicture, requireAuth)
}

// GetUser returns a profile with phone numbers and follow counts
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	profile, err := h.userService.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, profile)
}

func (h *UserHandler) GetUserPosts(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	posts, total, err := h.userService.Posts(c.Request().Context(), id, page)
	if err != nil {
		return err
	}
	return paginated(c, posts, page, total)
}

// SearchUsers matches ?q= against first and last names
func (h *UserHandler) SearchUsers(c echo.Context) error {
	limit, err := queryInt(c, "limit", services.DefaultSearchLimit)
	if err != nil {
		return err
	}
	users, err := h.userService.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return err
	}
	return ok(c, users)
}

func (h *UserHandler) UpdateProfilePicture(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	var req models.UpdateProfilePictureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfilePicture(c.Request().Context(), id, currentUserID, req.ProfilePicURL)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Profile picture updated successfully", echo.Map{"profile_pic_url": user.ProfilePicURL})
}
