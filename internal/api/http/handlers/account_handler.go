package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/token-auth-service/internal/api/dto"
	"github.com/spec-kit/token-auth-service/internal/auth"
	apperrors "github.com/spec-kit/token-auth-service/pkg/util/errorutil"
)

// AccountHandler serves endpoints about the authenticated caller.
type AccountHandler struct{}

// NewAccountHandler constructs handler.
func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

// Me handles GET /api/me.
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	sc, ok := auth.SecurityContextFrom(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.AuthenticationRequiredMessage)
	}
	authorities := sc.Authorities
	if authorities == nil {
		authorities = []string{}
	}
	return c.JSON(dto.PrincipalResponse{Principal: sc.Principal, Authorities: authorities})
}

// Home handles GET / and GET /home, which are public.
func (h *AccountHandler) Home(c *fiber.Ctx) error {
	resp := fiber.Map{"message": "welcome", "authenticated": false}
	if sc, ok := auth.SecurityContextFrom(c); ok {
		resp["authenticated"] = true
		resp["principal"] = sc.Principal
	}
	return c.JSON(resp)
}
