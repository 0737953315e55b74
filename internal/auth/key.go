package auth

import (
	"github.com/pkg/errors"
)

// MinSecretLength is the shortest secret accepted for HMAC-SHA-512 signing.
const MinSecretLength = 64

// ErrKeyDerivation is returned when a signing key cannot be built from the configured secret.
var ErrKeyDerivation = errors.New("cannot derive signing key")

// SigningKey holds the symmetric key shared by TokenIssuer and TokenValidator.
// The zero value is not usable.
type SigningKey struct {
	material []byte
}

// NewSigningKey derives the signing key from secret. The same secret always
// yields the same key.
func NewSigningKey(secret string) (SigningKey, error) {
	if secret == "" {
		return SigningKey{}, errors.WithMessage(ErrKeyDerivation, "secret is empty")
	}
	if len(secret) < MinSecretLength {
		return SigningKey{}, errors.WithMessagef(ErrKeyDerivation,
			"secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	return SigningKey{material: []byte(secret)}, nil
}

func (k SigningKey) bytes() []byte {
	return k.material
}

func (k SigningKey) valid() bool {
	return len(k.material) >= MinSecretLength
}
