package domain

import "testing"

func TestRoleAuthority(t *testing.T) {
	cases := map[string]string{
		"USER":       "ROLE_USER",
		"ADMIN":      "ROLE_ADMIN",
		"ROLE_ADMIN": "ROLE_ADMIN",
	}
	for role, want := range cases {
		if got := RoleAuthority(role); got != want {
			t.Errorf("RoleAuthority(%q) = %q, want %q", role, got, want)
		}
	}
}
