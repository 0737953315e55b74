package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the scheme label placed in front of every issued token.
const BearerPrefix = "Bearer "

// Claims describes the JWT payload.
//
// Authorities distinguishes an absent claim (nil) from an explicit empty
// list, so callers can tell a token that carries no grant from one that
// grants nothing.
type Claims struct {
	Authorities []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// HasAuthorities reports whether the authorities claim was present.
func (c *Claims) HasAuthorities() bool {
	return c != nil && c.Authorities != nil
}

// IssuedAtTime returns the iat claim or the zero time.
func (c *Claims) IssuedAtTime() time.Time {
	if c == nil || c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim or the zero time.
func (c *Claims) ExpiresAtTime() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
