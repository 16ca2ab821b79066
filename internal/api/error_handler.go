package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tasktrack/webapp/internal/api/view"
	"github.com/tasktrack/webapp/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends expired sessions back to the login screen.
//   - Renders the access-denied screen for 403s from the route guard.
//   - Logs unexpected errors internally without leaking details to the
//     user, rendering a generic error screen instead.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrUnauthorized) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		switch code {
		case http.StatusForbidden:
			_ = c.Render(code, "denied.html", view.Data{Title: "Access Denied"})
		case http.StatusNotFound:
			_ = c.Render(code, "error.html", view.Data{Title: "Not Found", Content: "That page does not exist."})
		default:
			if code >= http.StatusInternalServerError {
				log.Error().
					Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Msg("unhandled error")
			}
			msg := "Something unexpected happened. Please try again."
			if he != nil && code < http.StatusInternalServerError {
				msg = fmt.Sprintf("%v", he.Message)
			}
			_ = c.Render(code, "error.html", view.Data{Title: "Error", Content: msg})
		}
	}
}
