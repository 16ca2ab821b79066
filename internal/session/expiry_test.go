package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenExpiry_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	got, ok := TokenExpiry(signed)
	if !ok {
		t.Fatalf("expected expiry to be readable")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	if _, ok := TokenExpiry("not-a-jwt-at-all"); ok {
		t.Fatalf("opaque tokens must report no expiry")
	}
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
	signed, err := token.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, ok := TokenExpiry(signed); ok {
		t.Fatalf("token without exp must report no expiry")
	}
}
