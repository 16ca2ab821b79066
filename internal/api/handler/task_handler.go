package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
)

type TaskHandler struct {
	tasks    ports.TaskService
	projects ports.ProjectService
}

func NewTaskHandler(tasks ports.TaskService, projects ports.ProjectService) *TaskHandler {
	return &TaskHandler{tasks: tasks, projects: projects}
}

type taskForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Status      string `form:"status" validate:"required,oneof=todo in_progress done"`
	DueDate     string `form:"due_date" validate:"required"`
	Project     int64  `form:"project"`
	AssignedTo  int64  `form:"assigned_to" validate:"required"`
}

// taskRow pairs a task with its overdue flag so the template stays free
// of clock logic.
type taskRow struct {
	Task    domain.Task
	Overdue bool
}

type taskListView struct {
	Tasks    []taskRow
	Projects []domain.Project
	Filter   string
	Filters  []string
}

var taskFilters = []string{"all", "todo", "in_progress", "done", "overdue"}

func (h *TaskHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.List(c.Request().Context(), sess)
	if err != nil {
		if sessionExpired(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		tasks = nil
	}

	viewData := taskListView{
		Filter:  c.QueryParam("filter"),
		Filters: taskFilters,
	}
	if viewData.Filter == "" {
		viewData.Filter = "all"
	}

	now := time.Now()
	for _, task := range filterTasks(tasks, viewData.Filter, now) {
		viewData.Tasks = append(viewData.Tasks, taskRow{Task: task, Overdue: task.IsOverdue(now)})
	}

	// Admins get the create/edit forms, which need the project list.
	if ctxUser(c).IsAdmin() {
		if projects, err := h.projects.List(c.Request().Context(), sess); err == nil {
			viewData.Projects = projects
		}
	}

	return render(c, http.StatusOK, "tasks.html", "Tasks", viewData)
}

func filterTasks(tasks []domain.Task, filter string, now time.Time) []domain.Task {
	if filter == "all" || filter == "" {
		return tasks
	}
	var out []domain.Task
	for _, task := range tasks {
		if filter == "overdue" {
			if task.IsOverdue(now) {
				out = append(out, task)
			}
			continue
		}
		if string(task.Status) == filter {
			out = append(out, task)
		}
	}
	return out
}

func (h *TaskHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form taskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil || form.Project == 0 {
		msg := "Please fill in all required fields"
		if err != nil {
			msg = err.Error()
		}
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: msg})
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}

	if _, err := h.tasks.Create(c.Request().Context(), sess, taskInput(form)); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Task created successfully"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *TaskHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form taskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: err.Error()})
		return c.Redirect(http.StatusSeeOther, "/tasks")
	}

	if _, err := h.tasks.Update(c.Request().Context(), sess, id, taskInput(form)); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Task updated successfully"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	status := domain.TaskStatus(c.FormValue("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if _, err := h.tasks.UpdateStatus(c.Request().Context(), sess, id, status); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Task status updated"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *TaskHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), sess, id); err == nil {
		sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Task deleted successfully"})
	} else if sessionExpired(err) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// taskInput converts the form into the API payload. The date-only form
// value gains a midnight time component, matching what the API expects.
func taskInput(form taskForm) domain.TaskInput {
	return domain.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		Status:      domain.TaskStatus(form.Status),
		DueDate:     form.DueDate + "T00:00:00Z",
		Project:     form.Project,
		AssignedTo:  form.AssignedTo,
	}
}
