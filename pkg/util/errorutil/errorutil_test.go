package errorutil_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/token-auth-service/pkg/util/errorutil"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, errorutil.ToDomainError(nil))

	forbidden := errorutil.ToDomainError(fmt.Errorf("wrapped: %w", errorutil.NewForbidden("nope")))
	assert.Equal(t, http.StatusForbidden, forbidden.HTTPStatus)
	assert.Equal(t, "FORBIDDEN", forbidden.Code)
	assert.Equal(t, "nope", forbidden.Message)

	fe := errorutil.ToDomainError(fiber.NewError(http.StatusBadRequest, "user and password required"))
	assert.Equal(t, http.StatusBadRequest, fe.HTTPStatus)
	assert.Equal(t, "VALIDATION_FAILED", fe.Code)

	notFound := errorutil.ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)

	internal := errorutil.ToDomainError(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
	assert.ErrorContains(t, internal, "connection refused")
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errorutil.NewValidationError("user and password required", nil), http.StatusBadRequest, "VALIDATION_FAILED"},
		{errorutil.NewUnauthorized("authentication required"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{errorutil.NewForbidden("insufficient authority"), http.StatusForbidden, "FORBIDDEN"},
		{errorutil.NewServiceUnavailable("login is unavailable"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}
	for _, tc := range cases {
		de := errorutil.ToDomainError(tc.err)
		assert.Equal(t, tc.status, de.HTTPStatus, tc.code)
		assert.Equal(t, tc.code, de.Code)
	}

	unavailable := errorutil.ToDomainError(fiber.NewError(http.StatusServiceUnavailable, "down"))
	assert.Equal(t, "SERVICE_UNAVAILABLE", unavailable.Code)
}
