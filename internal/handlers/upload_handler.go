package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UploadHandler accepts image uploads
type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// RegisterUploadRoutes registers upload routes with the given middleware
// (authentication and a body limit).
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group, mw ...echo.MiddlewareFunc) {
	g.POST("/image", h.UploadImage, mw...)
}

// UploadImage stores the multipart field "image"
func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return apperrors.Validation("No file uploaded")
		}
		return apperrors.Validation("Invalid multipart upload")
	}

	result, err := h.uploadService.UploadImage(c.Request().Context(), file)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Image uploaded successfully", result)
}
