package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/token-auth-service/pkg/util/errorutil"
)

// AuthenticationRequiredMessage is returned when a guarded route has no authenticated caller.
const AuthenticationRequiredMessage = "authentication required"

// RequireAuthenticated ensures the gate populated a security context.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SecurityContextFrom(c); !ok {
			return apperrors.NewUnauthorized(AuthenticationRequiredMessage)
		}
		return c.Next()
	}
}

// RequireAuthority ensures the caller holds at least one of the allowed authorities.
func RequireAuthority(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sc, ok := SecurityContextFrom(c)
		if !ok {
			return apperrors.NewUnauthorized(AuthenticationRequiredMessage)
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		if !sc.HasAnyAuthority(allowed...) {
			return apperrors.NewForbidden("insufficient authority")
		}
		return c.Next()
	}
}
