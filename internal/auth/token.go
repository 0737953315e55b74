package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// DefaultTokenLifetime applies when the issuer is built without a positive lifetime.
const DefaultTokenLifetime = 1440 * time.Minute

// ErrSigning is returned when a token cannot be serialized or signed.
var ErrSigning = errors.New("cannot sign token")

var signingMethod = jwt.SigningMethodHS512

// TokenIssuer builds and signs bearer tokens for authenticated principals.
type TokenIssuer struct {
	key      SigningKey
	lifetime time.Duration
}

// NewTokenIssuer builds a new issuer.
func NewTokenIssuer(key SigningKey, lifetime time.Duration) *TokenIssuer {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenIssuer{key: key, lifetime: lifetime}
}

// Lifetime returns the fixed validity window of issued tokens.
func (i *TokenIssuer) Lifetime() time.Duration {
	return i.lifetime
}

// ExpiresAt returns the expiry a token issued at now will carry.
func (i *TokenIssuer) ExpiresAt(now time.Time) time.Time {
	return jwt.NewNumericDate(now.Add(i.lifetime)).Time
}

// Issue signs a token for principalID carrying authorities in the given order.
// The returned value is prefixed with BearerPrefix.
func (i *TokenIssuer) Issue(principalID string, authorities []string, now time.Time) (string, error) {
	if principalID == "" {
		return "", errors.WithMessage(ErrSigning, "principal is required")
	}
	if !i.key.valid() {
		return "", errors.WithMessage(ErrSigning, "signing key is not initialized")
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}
	if len(authorities) > 0 {
		claims.Authorities = append(make([]string, 0, len(authorities)), authorities...)
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	signed, err := token.SignedString(i.key.bytes())
	if err != nil {
		return "", errors.Wrap(ErrSigning, err.Error())
	}
	return BearerPrefix + signed, nil
}
