package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewHTTPErrorHandler writes every error as the failure envelope. Internal
// errors are logged with their cause and reported with a generic message.
func NewHTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().RequestURI,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).Errorf("request failed: %+v", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, Response{Success: false, Error: message})
		}
		if writeErr != nil {
			log.WithError(writeErr).Warn("failed to write error response")
		}
	}
}

func classify(err error) (int, string) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status := appErr.Kind.StatusCode()
		if status >= http.StatusInternalServerError {
			return status, "Internal server error"
		}
		return status, appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			message = m
		} else if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
		if httpErr.Code >= http.StatusInternalServerError {
			message = "Internal server error"
		}
		return httpErr.Code, message
	}

	return http.StatusInternalServerError, "Internal server error"
}
