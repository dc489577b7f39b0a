package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request count and latency per matched route.
// Unmatched paths are reported under one label to bound cardinality.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(c.Request().Method, route, statusOf(c, err), time.Since(start))
			return err
		}
	}
}

// statusOf predicts the status the error handler will write for err, since
// the response has not been committed yet when a handler returns an error.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.StatusCode()
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
