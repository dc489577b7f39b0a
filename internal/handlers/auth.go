package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAuthRoutes registers authentication-related routes. limit guards
// the credential endpoints; requireAuth guards /me.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, limit, requireAuth echo.MiddlewareFunc) {
	g.POST("/register", h.Register, limit)
	g.POST("/login", h.Login, limit)
	g.GET("/me", h.Me, requireAuth)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "User registered successfully", result)
}

// Login exchanges email and password for a token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Login successful", result)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, user)
}
