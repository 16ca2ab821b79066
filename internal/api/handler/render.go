package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/api/view"
)

// render fills the shared view envelope (user, drained notifications,
// session expiry) and renders the named page template.
func render(c echo.Context, code int, page, title string, content any) error {
	data := view.Data{
		Title:   title,
		User:    ctxUser(c),
		Content: content,
	}

	if sess, err := ctxSession(c); err == nil {
		data.Notifications = sess.Notifications()
		if exp, ok := sess.ExpiresAt(); ok {
			data.ExpiresAt = exp
			data.HasExpiry = true
		}
	}

	return c.Render(code, page, data)
}
