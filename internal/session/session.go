// Package session is the single source of truth for "who is logged in" in
// one browser. The token pair lives in a signed cookie session under the
// fixed keys "access_token" and "refresh_token"; the current user record
// is resolved per request (login, register, or profile restore) and never
// persisted locally. Flash notifications ride in the same session.
package session

import (
	"encoding/gob"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/tasktrack/webapp/internal/core/domain"
)

const (
	cookieName = "tasktrack_session"

	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

func init() {
	gob.Register(domain.Notification{})
}

// Middleware installs the cookie session store. secure controls the
// cookie's Secure flag (off in development over plain HTTP).
func Middleware(secret string, secure bool) echo.MiddlewareFunc {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return echosession.Middleware(store)
}

// Session wraps one request's cookie session. All mutation happens through
// its methods; writers are the auth operations and the gateway's refresh
// paths, everything else reads. The mutex covers the dashboard's parallel
// fetches, where two in-flight calls may both touch the token pair.
type Session struct {
	c    echo.Context
	s    *sessions.Session
	mu   sync.Mutex
	user *domain.User
}

// FromContext loads (or creates) the session for the current request.
// A cookie that fails to decode (rotated secret, tampering) still yields
// a fresh usable session rather than an error.
func FromContext(c echo.Context) (*Session, error) {
	s, err := echosession.Get(cookieName, c)
	if s == nil {
		return nil, err
	}
	return &Session{c: c, s: s}, nil
}

// AccessToken returns the stored access token, or "" when absent.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, _ := s.s.Values[keyAccessToken].(string)
	return token
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, _ := s.s.Values[keyRefreshToken].(string)
	return token
}

// SetTokens stores a fresh token pair, as issued by login or register.
func (s *Session) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Values[keyAccessToken] = access
	s.s.Values[keyRefreshToken] = refresh
	s.save()
}

// SetAccessToken replaces only the access token after a successful refresh
// exchange; the refresh token stays.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Values[keyAccessToken] = token
	s.save()
}

// Clear drops both tokens and the current user. Idempotent; clearing an
// already-empty session is a no-op that still succeeds.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.s.Values, keyAccessToken)
	delete(s.s.Values, keyRefreshToken)
	s.user = nil
	s.save()
}

// User returns the user resolved for this request, or nil.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser records the user for the remainder of this request.
func (s *Session) SetUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Notify queues one flash notification for the next rendered screen.
func (s *Session) Notify(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.AddFlash(n)
	s.save()
}

// Notifications drains the queued flash notifications.
func (s *Session) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	flashes := s.s.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	out := make([]domain.Notification, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(domain.Notification); ok {
			out = append(out, n)
		}
	}
	s.save()
	return out
}

// save writes the session to the response cookie. Mutations during a
// request happen before the screen renders, so the header is still open.
func (s *Session) save() {
	if err := s.s.Save(s.c.Request(), s.c.Response()); err != nil {
		s.c.Logger().Warnf("session save: %v", err)
	}
}
