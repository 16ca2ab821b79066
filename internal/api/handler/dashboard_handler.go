package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	tasks     ports.TaskService
}

func NewDashboardHandler(dashboard ports.DashboardService, tasks ports.TaskService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, tasks: tasks}
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboard.Load(c.Request().Context(), sess)
	if err != nil {
		if sessionExpired(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		// Keep the screen up with zeroed stats; the failure toast is
		// already queued.
		stats = &domain.DashboardStats{}
	}
	return render(c, http.StatusOK, "dashboard.html", "Dashboard", stats)
}

// Export streams the upstream export payload to the browser as a dated
// JSON attachment.
func (h *DashboardHandler) Export(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	data, name, err := h.tasks.Export(c.Request().Context(), sess)
	if err != nil {
		if sessionExpired(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}
