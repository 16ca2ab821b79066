package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
)

type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
}

func (h *ProjectHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.List(c.Request().Context(), sess)
	if err != nil {
		if sessionExpired(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		projects = nil
	}
	return render(c, http.StatusOK, "projects.html", "Projects", projects)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form projectForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: err.Error()})
		return c.Redirect(http.StatusSeeOther, "/projects")
	}

	input := domain.ProjectInput{Title: form.Title, Description: form.Description}
	if _, err := h.projects.Create(c.Request().Context(), sess, input); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Project created successfully"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/projects")
}

func (h *ProjectHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form projectForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: err.Error()})
		return c.Redirect(http.StatusSeeOther, "/projects")
	}

	input := domain.ProjectInput{Title: form.Title, Description: form.Description}
	if _, err := h.projects.Update(c.Request().Context(), sess, id, input); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Project updated successfully"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/projects")
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.projects.Delete(c.Request().Context(), sess, id); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Project deleted successfully"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/projects")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
