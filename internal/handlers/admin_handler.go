package handlers

import (
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/stats", h.GetStats, requireAuth)
}

// GetStats returns platform-wide totals
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}
