package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// unreadableExpiry stands in for the expiry of a token whose exp claim
// cannot be read. It never parses, so the manager logs the session out.
const unreadableExpiry = "unreadable-token-expiry"

// TokenClaims are the claims otdash reads from a backend token.
type TokenClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken decodes the claims of a backend JWT without verifying its
// signature. The backend verifies tokens; the client only reads them.
func ParseToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpiry returns the exp claim of token.
func TokenExpiry(token string) (time.Time, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// ExpiryValue returns the raw session expiry string from store. When
// sessionExpires is unset but a token is present, the token's exp claim
// stands in for it.
func ExpiryValue(store Store) (string, error) {
	expires, err := store.Get(KeySessionExpires)
	if err != nil || expires != "" {
		return expires, err
	}

	token, err := store.Get(KeyToken)
	if err != nil || token == "" {
		return "", err
	}
	exp, err := TokenExpiry(token)
	if err != nil {
		return unreadableExpiry, nil
	}
	return exp.UTC().Format(time.RFC3339), nil
}

// ParseExpiry parses a persisted expiry value. The backend writes
// ISO-8601 instants with or without fractional seconds.
func ParseExpiry(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
