package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/api/middleware"
	"github.com/tasktrack/webapp/internal/api/view"
	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/session"
)

type stubAuth struct {
	user      *domain.User
	loginErr  error
	loggedOut bool
}

func (s *stubAuth) Login(_ context.Context, sess ports.Session, username, password string) (*domain.User, error) {
	if s.loginErr != nil {
		sess.Notify(domain.Notification{Kind: domain.NotifyError, Message: "Invalid credentials"})
		return nil, s.loginErr
	}
	sess.SetTokens("a", "r")
	sess.SetUser(s.user)
	return s.user, nil
}

func (s *stubAuth) Register(_ context.Context, sess ports.Session, _ domain.RegisterInput) (*domain.User, error) {
	sess.SetTokens("a", "r")
	sess.SetUser(s.user)
	return s.user, nil
}

func (s *stubAuth) Logout(_ context.Context, sess ports.Session) {
	s.loggedOut = true
	sess.Clear()
}

func (s *stubAuth) Restore(context.Context, ports.Session) (*domain.User, error) {
	return s.user, nil
}

func newAuthApp(t *testing.T, auth ports.AuthService) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("view setup: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	e.Use(session.Middleware("test-secret", false))
	e.Use(middleware.LoadSession())

	h := NewAuthHandler(auth)
	e.GET("/login", h.ShowLogin)
	e.POST("/login", h.Login)
	e.GET("/register", h.ShowRegister)
	e.POST("/register", h.Register)
	e.GET("/logout", h.Logout)
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_ShowLogin(t *testing.T) {
	e := newAuthApp(t, &stubAuth{})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign in") {
		t.Fatalf("login screen not rendered")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newAuthApp(t, &stubAuth{user: &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}})

	rec := postForm(e, "/login", url.Values{"username": {"admin"}, "password": {"admin123"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatalf("expected session cookie to be written")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	auth := &stubAuth{user: &domain.User{ID: 1}}
	e := newAuthApp(t, auth)

	rec := postForm(e, "/login", url.Values{"username": {"admin"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("presence failure must bounce back to /login, got %q", loc)
	}
}

func TestAuthHandler_Login_UpstreamFailure(t *testing.T) {
	e := newAuthApp(t, &stubAuth{loginErr: domain.ErrUnauthorized})

	rec := postForm(e, "/login", url.Values{"username": {"admin"}, "password": {"nope"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("failed login must return to /login, got %q", loc)
	}
}

func TestAuthHandler_Register_AdminNeedsKey(t *testing.T) {
	e := newAuthApp(t, &stubAuth{user: &domain.User{ID: 1, Role: domain.RoleAdmin}})

	form := url.Values{
		"username":         {"boss"},
		"email":            {"boss@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
		"role":             {"admin"},
		// admin_key deliberately absent
	}
	rec := postForm(e, "/register", form)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/register" {
		t.Fatalf("missing admin key must bounce back to /register, got %q", loc)
	}
}

func TestAuthHandler_Register_ContributorNeedsNoKey(t *testing.T) {
	e := newAuthApp(t, &stubAuth{user: &domain.User{ID: 2, Role: domain.RoleContributor}})

	form := url.Values{
		"username":         {"worker"},
		"email":            {"worker@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
		"role":             {"contributor"},
	}
	rec := postForm(e, "/register", form)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	auth := &stubAuth{user: &domain.User{ID: 1}}
	e := newAuthApp(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if !auth.loggedOut {
		t.Fatalf("logout must reach the auth service")
	}
}
