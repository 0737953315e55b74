package auth

import (
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	errMissingSubject  = errors.New("token has no subject")
	errMissingIssuedAt = errors.New("token has no issued-at")
	errExpiryNotAfter  = errors.New("token expires before it was issued")
)

// TokenValidator parses and verifies bearer tokens.
type TokenValidator struct {
	key    SigningKey
	now    func() time.Time
	leeway time.Duration
}

// ValidatorOption customizes a TokenValidator.
type ValidatorOption func(*TokenValidator)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *TokenValidator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLeeway tolerates clock skew when checking exp.
func WithLeeway(leeway time.Duration) ValidatorOption {
	return func(v *TokenValidator) {
		if leeway > 0 {
			v.leeway = leeway
		}
	}
}

// NewTokenValidator builds a validator bound to key.
func NewTokenValidator(key SigningKey, opts ...ValidatorOption) *TokenValidator {
	v := &TokenValidator{key: key, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate classifies the raw Authorization header value. An empty string
// stands for an absent header.
func (v *TokenValidator) Validate(header string) (outcome Outcome) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return noCredential()
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = internalFailure(fmt.Errorf("panic during token validation: %v", r))
		}
	}()

	claims, err := v.parse(strings.TrimPrefix(header, BearerPrefix))
	if err != nil {
		return classify(err)
	}
	if claims.HasAuthorities() {
		return Outcome{Kind: OutcomeValid, Claims: claims}
	}
	return Outcome{Kind: OutcomeValidNoAuthorities, Claims: claims}
}

func (v *TokenValidator) parse(raw string) (*Claims, error) {
	if !v.key.valid() {
		return nil, errors.New("signing key is not initialized")
	}

	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(v.leeway))
	}

	parsed, err := jwt.NewParser(opts...).ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.key.bytes(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.WithStack(errMissingSubject)
	}
	if claims.IssuedAt == nil {
		return nil, errors.WithStack(errMissingIssuedAt)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, errors.WithStack(errExpiryNotAfter)
	}
	return claims, nil
}

// classify maps parser failures onto the rejection taxonomy. The order
// matters: an expired token with an unknown claim still reads as expired.
func classify(err error) Outcome {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return rejected(RejectionExpired, err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, errMissingSubject),
		errors.Is(err, errMissingIssuedAt),
		errors.Is(err, errExpiryNotAfter):
		return rejected(RejectionMalformedStructure, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return rejected(RejectionBadSignature, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return rejected(RejectionUnsupportedFormat, err)
	default:
		return internalFailure(err)
	}
}
