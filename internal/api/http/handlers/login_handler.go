package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/token-auth-service/internal/api/dto"
	"github.com/spec-kit/token-auth-service/internal/service"
	apperrors "github.com/spec-kit/token-auth-service/pkg/util/errorutil"
)

// Authenticator is the login collaborator used by LoginHandler.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

// LoginHandler exchanges credentials for a bearer token.
type LoginHandler struct {
	auth Authenticator
}

// NewLoginHandler constructs handler.
func NewLoginHandler(auth Authenticator) *LoginHandler {
	return &LoginHandler{auth: auth}
}

// Login handles POST /login.
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if req.User == "" && req.Password == "" {
		if err := c.QueryParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if req.User == "" || req.Password == "" {
		return apperrors.NewValidationError("user and password required", map[string]any{"fields": []string{"user", "password"}})
	}

	result, err := h.auth.Login(c.UserContext(), req.User, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(http.StatusUnauthorized).JSON(dto.LoginFailureResponse{
			Error:   "Authentication failed",
			Message: "Invalid username or password",
		})
	case errors.Is(err, service.ErrUserStoreUnavailable):
		return apperrors.NewServiceUnavailable("login is unavailable")
	case errors.Is(err, service.ErrTokenIssuance):
		return apperrors.NewDomainError("TOKEN_ISSUANCE_FAILED", "cannot issue token", http.StatusInternalServerError, nil)
	default:
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.LoginResponse{
		Username:  result.Username,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}
