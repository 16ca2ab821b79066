package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/ports"
)

type ActivityHandler struct {
	activity ports.ActivityService
}

func NewActivityHandler(activity ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List renders the task audit trail. The route is admin-gated by the
// guard before this handler runs.
func (h *ActivityHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	logs, err := h.activity.List(c.Request().Context(), sess)
	if err != nil {
		if sessionExpired(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		logs = nil
	}
	return render(c, http.StatusOK, "activity_logs.html", "Activity Log", logs)
}
