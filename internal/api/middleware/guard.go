package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/session"
)

// Decision is the route guard's verdict for one screen request.
type Decision int

const (
	// DecisionPlaceholder: session restoration still unresolved, render
	// nothing but an interstitial.
	DecisionPlaceholder Decision = iota
	// DecisionRedirectLogin: nobody is logged in.
	DecisionRedirectLogin
	// DecisionDeny: logged in, but the screen requires the admin role.
	DecisionDeny
	// DecisionAllow: render the screen.
	DecisionAllow
)

// Decide is a pure function of session state plus the screen's admin
// requirement. It holds no state of its own.
func Decide(restoring bool, user *domain.User, requireAdmin bool) Decision {
	switch {
	case restoring:
		return DecisionPlaceholder
	case user == nil:
		return DecisionRedirectLogin
	case requireAdmin && !user.IsAdmin():
		return DecisionDeny
	}
	return DecisionAllow
}

// LoadSession attaches the cookie session to the request context for
// every route, gated or not.
func LoadSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.FromContext(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}
			c.Set("session", sess)
			return next(c)
		}
	}
}

// Guard gates a screen on session state. Restoration resolves
// synchronously here (the server-side equivalent of the loading state):
// a request arriving with tokens but no resolved user triggers a profile
// fetch before the decision is taken.
func Guard(auth ports.AuthService, requireAdmin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get("session").(*session.Session)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "session not loaded")
			}

			user := sess.User()
			if user == nil && sess.AccessToken() != "" {
				// Restore clears the session itself on any failure; the
				// decision below then falls through to the login redirect.
				user, _ = auth.Restore(c.Request().Context(), sess)
			}

			switch Decide(false, user, requireAdmin) {
			case DecisionRedirectLogin:
				return c.Redirect(http.StatusSeeOther, "/login")
			case DecisionDeny:
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
