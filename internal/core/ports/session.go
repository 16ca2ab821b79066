// Package ports declares the interfaces the web layer and the core
// services meet at, so handlers can be tested against stubs.
package ports

import "github.com/tasktrack/webapp/internal/core/domain"

// Session is the per-browser session context threaded through every
// service call. internal/session provides the cookie-backed
// implementation; tests use an in-memory one. The token methods are the
// subset the upstream gateway consumes.
type Session interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
	SetAccessToken(token string)
	Clear()
	User() *domain.User
	SetUser(u *domain.User)
	Notify(n domain.Notification)
}
