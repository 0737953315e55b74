package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-auth-service/internal/auth"
)

func TestSecurityContext_Authorities(t *testing.T) {
	sc := auth.NewSecurityContext("alice", []string{"ROLE_USER", "ROLE_USER", "ROLE_OPS"})

	assert.Equal(t, []string{"ROLE_USER", "ROLE_USER", "ROLE_OPS"}, sc.Authorities)
	assert.True(t, sc.HasAuthority("ROLE_OPS"))
	assert.False(t, sc.HasAuthority("ROLE_ADMIN"))
	assert.True(t, sc.HasAnyAuthority("ROLE_ADMIN", "ROLE_USER"))

	var missing *auth.SecurityContext
	assert.False(t, missing.HasAuthority("ROLE_USER"))
}

func TestGuards(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: renderDomainError})
	app.Use(auth.NewGate(newValidator(t, issuedAt), auth.GateDependencies{}).Handle)
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }
	app.Get("/any", auth.RequireAuthenticated(), ok)
	app.Get("/admin", auth.RequireAuthority("ROLE_ADMIN"), ok)

	user := issue(t, testSecret, []string{"ROLE_USER"}, issuedAt)
	admin := issue(t, testSecret, []string{"ROLE_ADMIN"}, issuedAt)

	cases := []struct {
		path   string
		header string
		status int
		code   string
	}{
		{"/any", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/any", user, http.StatusNoContent, ""},
		{"/any", issue(t, testSecret, nil, issuedAt), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/admin", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/admin", user, http.StatusForbidden, "FORBIDDEN"},
		{"/admin", admin, http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tc.header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s with %q", tc.path, tc.header)
		if tc.code == "" {
			continue
		}
		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tc.code, body.Code, "%s with %q", tc.path, tc.header)
	}
}
