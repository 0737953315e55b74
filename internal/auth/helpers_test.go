package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-auth-service/internal/auth"
	apperrors "github.com/spec-kit/token-auth-service/pkg/util/errorutil"
)

var (
	testSecret  = strings.Repeat("k", auth.MinSecretLength)
	otherSecret = strings.Repeat("o", auth.MinSecretLength)
	issuedAt    = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
)

func mustKey(t *testing.T, secret string) auth.SigningKey {
	t.Helper()
	key, err := auth.NewSigningKey(secret)
	require.NoError(t, err)
	return key
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// signRaw signs arbitrary claims, bypassing TokenIssuer, and returns the
// header value a client would send.
func signRaw(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return auth.BearerPrefix + signed
}

// renderDomainError mirrors the service error handler closely enough for
// status and code assertions.
func renderDomainError(c *fiber.Ctx, err error) error {
	de := apperrors.ToDomainError(err)
	return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "message": de.Message})
}
