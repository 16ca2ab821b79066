package ports

import (
	"context"

	"github.com/tasktrack/webapp/internal/core/domain"
)

// AuthService owns the session lifecycle: populate on login/register,
// restore on first contact, clear on logout.
type AuthService interface {
	// Login exchanges credentials for a token pair and the user record.
	// On failure the session is left untouched.
	Login(ctx context.Context, sess Session, username, password string) (*domain.User, error)
	// Register creates an account with the same success contract as Login.
	Register(ctx context.Context, sess Session, input domain.RegisterInput) (*domain.User, error)
	// Logout clears tokens and user unconditionally. Never fails.
	Logout(ctx context.Context, sess Session)
	// Restore resolves the current user from a stored access token, or
	// clears the session when the token no longer yields a profile. A nil
	// user with nil error means simply "not logged in".
	Restore(ctx context.Context, sess Session) (*domain.User, error)
}

// ProfileCache memoises profile fetches per access token so the route
// guard does not hit /auth/profile/ on every request.
type ProfileCache interface {
	Get(ctx context.Context, accessToken string) (*domain.User, bool)
	Set(ctx context.Context, accessToken string, user *domain.User)
	Invalidate(ctx context.Context, accessToken string)
}
