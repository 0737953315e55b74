package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-auth-service/internal/auth"
)

func TestNewSigningKey_RejectsWeakSecrets(t *testing.T) {
	_, err := auth.NewSigningKey("")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrKeyDerivation)

	_, err = auth.NewSigningKey(strings.Repeat("x", auth.MinSecretLength-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrKeyDerivation)
	assert.Contains(t, err.Error(), "at least 64 bytes")
}

func TestNewSigningKey_Deterministic(t *testing.T) {
	first := mustKey(t, testSecret)
	second := mustKey(t, testSecret)

	tokenA, err := auth.NewTokenIssuer(first, 0).Issue("alice", []string{"ROLE_USER"}, issuedAt)
	require.NoError(t, err)
	tokenB, err := auth.NewTokenIssuer(second, 0).Issue("alice", []string{"ROLE_USER"}, issuedAt)
	require.NoError(t, err)

	assert.Equal(t, tokenA, tokenB)
}
