package middleware

import (
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserContextKey is where JWTAuthMiddleware stores the verified claims.
const UserContextKey = "user"

// JWTAuthMiddleware checks for a valid JWT and extracts user claims.
func JWTAuthMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperrors.Unauthenticated("Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperrors.Unauthenticated("Invalid Authorization header format")
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				return apperrors.Unauthenticated("Invalid or expired token")
			}

			c.Set(UserContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims stored by JWTAuthMiddleware.
func ClaimsFromContext(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(UserContextKey).(*models.JwtCustomClaims)
	return claims, ok && claims != nil
}
