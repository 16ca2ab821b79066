package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry peeks at the exp claim of a JWT-shaped access token without
// verifying its signature. Used only for the "session expires at" display
// in the navbar; tokens are otherwise treated as opaque strings, and a
// token that does not parse simply reports no expiry.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ExpiresAt reports when the stored access token expires, when known.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}
	return TokenExpiry(token)
}
