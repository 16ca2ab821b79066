package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
)

type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required"`
	Password        string `form:"password" validate:"required"`
	PasswordConfirm string `form:"password_confirm" validate:"required"`
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	Role            string `form:"role" validate:"required,oneof=admin contributor"`
	// AdminKey presence is a UX nicety; the key itself is validated
	// server-side only.
	AdminKey string `form:"admin_key" validate:"required_if=Role admin"`
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, http.StatusOK, "login.html", "Sign in", nil)
}

func (h *AuthHandler) Login(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: err.Error()})
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if _, err := h.auth.Login(c.Request().Context(), sess, form.Username, form.Password); err != nil {
		// The gateway has already queued the failure notification.
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return render(c, http.StatusOK, "register.html", "Register", nil)
}

func (h *AuthHandler) Register(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: err.Error()})
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	user, err := h.auth.Register(c.Request().Context(), sess, domain.RegisterInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Role:            form.Role,
		AdminKey:        form.AdminKey,
	})
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	sess.Notify(domain.Notification{Kind: domain.NotifySuccess, Message: "Welcome, " + user.FullName() + "!"})
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	h.auth.Logout(c.Request().Context(), sess)
	return c.Redirect(http.StatusSeeOther, "/login")
}
