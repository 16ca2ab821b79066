package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/session"
)

// ctxSession extracts the cookie session installed by the LoadSession
// middleware. Its absence means the middleware chain is miswired, which
// is a programming error, not a user condition.
func ctxSession(c echo.Context) (*session.Session, error) {
	sess, ok := c.Get("session").(*session.Session)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not loaded")
	}
	return sess, nil
}

// ctxUser returns the user injected by the route guard, or nil on
// unguarded routes.
func ctxUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}

// sessionExpired reports whether err means the credentials are beyond
// recovery and the user must log in again.
func sessionExpired(err error) bool {
	return errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrUnauthorized)
}
