package handlers

import (
	"strconv"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's ID set by JWTAuthMiddleware.
func getUserIDFromContext(c echo.Context) (uint, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok || claims.UserID == 0 {
		return 0, apperrors.Unauthenticated("User not authenticated")
	}
	return claims.UserID, nil
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validationf("Valid %s ID is required", label)
	}
	return uint(id), nil
}

// queryInt reads an optional integer query parameter; absent means def.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validationf("%s must be an integer", name)
	}
	return v, nil
}

// bindAndValidate binds the request body into req and runs e.Validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("Invalid request payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// pageFromQuery reads ?page= and ?limit=, rejecting out-of-range values.
func pageFromQuery(c echo.Context) (services.Page, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return services.Page{}, err
	}
	if page < 1 {
		return services.Page{}, apperrors.Validation("Page must be a positive integer")
	}
	limit, err := queryInt(c, "limit", services.DefaultPageLimit)
	if err != nil {
		return services.Page{}, err
	}
	if limit < 1 || limit > services.MaxPageLimit {
		return services.Page{}, apperrors.Validationf("Limit must be between 1 and %d", services.MaxPageLimit)
	}
	return services.NewPage(page, limit), nil
}
