package domain

import (
	"strings"
	"time"
)

// AuthorityPrefix is prepended to a role name to form its authority label.
const AuthorityPrefix = "ROLE_"

// User is an account that can log in and receive a bearer token.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Authorities  []string  `json:"authorities"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleAuthority converts a role such as "USER" into "ROLE_USER". Values that
// already carry the prefix are returned unchanged.
func RoleAuthority(role string) string {
	if strings.HasPrefix(role, AuthorityPrefix) {
		return role
	}
	return AuthorityPrefix + role
}
