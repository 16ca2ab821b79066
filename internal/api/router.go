// Package api assembles the Echo application serving the screens.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tasktrack/webapp/internal/api/handler"
	"github.com/tasktrack/webapp/internal/api/middleware"
	"github.com/tasktrack/webapp/internal/api/view"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/infrastructure/config"
	"github.com/tasktrack/webapp/internal/session"
)

// Services bundles the core services the screens depend on.
type Services struct {
	Auth      ports.AuthService
	Projects  ports.ProjectService
	Tasks     ports.TaskService
	Activity  ports.ActivityService
	Dashboard ports.DashboardService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, svc Services, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(session.Middleware(cfg.SessionSecret, !cfg.IsDevelopment()))
	e.Use(middleware.LoadSession())

	// --- Route guards ---
	authed := middleware.Guard(svc.Auth, false)
	adminOnly := middleware.Guard(svc.Auth, true)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard, svc.Tasks)
	projectHandler := handler.NewProjectHandler(svc.Projects)
	taskHandler := handler.NewTaskHandler(svc.Tasks, svc.Projects)
	activityHandler := handler.NewActivityHandler(svc.Activity)

	// --- Auth screens (no guard) ---
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// --- Guarded screens ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	e.GET("/dashboard", dashboardHandler.Dashboard, authed)
	e.GET("/tasks/export", dashboardHandler.Export, authed)

	e.GET("/projects", projectHandler.List, authed)
	e.POST("/projects", projectHandler.Create, authed)
	e.POST("/projects/:id", projectHandler.Update, authed)
	e.POST("/projects/:id/delete", projectHandler.Delete, authed)

	e.GET("/tasks", taskHandler.List, authed)
	e.POST("/tasks", taskHandler.Create, authed)
	e.POST("/tasks/:id", taskHandler.Update, authed)
	e.POST("/tasks/:id/status", taskHandler.UpdateStatus, authed)
	e.POST("/tasks/:id/delete", taskHandler.Delete, authed)

	e.GET("/activity-logs", activityHandler.List, adminOnly)

	// --- Static assets and operational endpoints ---
	e.StaticFS("/static", echo.MustSubFS(view.Static, "static"))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e, nil
}
