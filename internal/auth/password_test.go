package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/token-auth-service/internal/auth"
)

func TestPasswordHasher(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, hasher.Matches(hash, "s3cret"))
	assert.False(t, hasher.Matches(hash, "S3cret"))
	assert.False(t, hasher.Matches("not-a-bcrypt-hash", "s3cret"))
}

func TestPasswordHasher_ClampsCost(t *testing.T) {
	hash, err := auth.NewPasswordHasher(1).Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
