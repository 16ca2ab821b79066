package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tasktrack/webapp/internal/core/domain"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/gateway"
)

// AuthService implements the session lifecycle against the external auth
// endpoints. The session is only written after the upstream call has
// succeeded, so a failed login or register leaves stored state untouched.
type AuthService struct {
	gw    *gateway.Gateway
	cache ports.ProfileCache
	log   zerolog.Logger
}

func NewAuthService(gw *gateway.Gateway, cache ports.ProfileCache, log zerolog.Logger) *AuthService {
	if cache == nil {
		cache = NoopProfileCache{}
	}
	return &AuthService{gw: gw, cache: cache, log: log}
}

func (s *AuthService) Login(ctx context.Context, sess ports.Session, username, password string) (*domain.User, error) {
	var payload domain.AuthPayload
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/login/",
		Body:   domain.Credentials{Username: username, Password: password},
	}, &payload)
	if err != nil {
		return nil, err
	}

	sess.SetTokens(payload.Access, payload.Refresh)
	sess.SetUser(payload.User)
	s.cache.Set(ctx, payload.Access, payload.User)

	s.log.Info().Str("username", username).Msg("user logged in")
	return payload.User, nil
}

func (s *AuthService) Register(ctx context.Context, sess ports.Session, input domain.RegisterInput) (*domain.User, error) {
	var payload domain.AuthPayload
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/register/",
		Body:   input,
	}, &payload)
	if err != nil {
		return nil, err
	}

	sess.SetTokens(payload.Access, payload.Refresh)
	sess.SetUser(payload.User)
	s.cache.Set(ctx, payload.Access, payload.User)

	s.log.Info().Str("username", input.Username).Str("role", input.Role).Msg("user registered")
	return payload.User, nil
}

// Logout clears the session unconditionally; calling it while already
// logged out is a harmless no-op.
func (s *AuthService) Logout(ctx context.Context, sess ports.Session) {
	if token := sess.AccessToken(); token != "" {
		s.cache.Invalidate(ctx, token)
	}
	sess.Clear()
}

// Restore resolves the current user for a request that arrived with a
// stored access token. Any failure to obtain a profile, including a failed
// silent refresh inside the gateway, leaves the session cleared and
// unauthenticated.
func (s *AuthService) Restore(ctx context.Context, sess ports.Session) (*domain.User, error) {
	token := sess.AccessToken()
	if token == "" {
		return nil, nil
	}

	if user, ok := s.cache.Get(ctx, token); ok {
		sess.SetUser(user)
		return user, nil
	}

	var user domain.User
	err := s.gw.Do(ctx, sess, gateway.Request{
		Method: http.MethodGet,
		Path:   "/auth/profile/",
	}, &user)
	if err != nil {
		sess.Clear()
		return nil, err
	}

	sess.SetUser(&user)
	// The gateway may have rotated the access token while fetching.
	s.cache.Set(ctx, sess.AccessToken(), &user)
	return &user, nil
}

// NoopProfileCache disables profile memoisation; every restore hits the
// profile endpoint. Used when Redis is not configured.
type NoopProfileCache struct{}

func (NoopProfileCache) Get(context.Context, string) (*domain.User, bool) { return nil, false }
func (NoopProfileCache) Set(context.Context, string, *domain.User)       {}
func (NoopProfileCache) Invalidate(context.Context, string)              {}
