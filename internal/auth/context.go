package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const securityContextKey = "auth_security_context"

type securityContextCtxKey struct{}

// SecurityContext is the authenticated principal of the current request and
// the authorities granted to it.
type SecurityContext struct {
	Principal   string
	Authorities []string
	set         map[string]struct{}
}

// NewSecurityContext builds a context for principal. Duplicate authorities
// collapse into the lookup set but Authorities keeps the token order.
func NewSecurityContext(principal string, authorities []string) *SecurityContext {
	set := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		set[a] = struct{}{}
	}
	return &SecurityContext{
		Principal:   principal,
		Authorities: append([]string(nil), authorities...),
		set:         set,
	}
}

// HasAuthority reports whether authority was granted.
func (s *SecurityContext) HasAuthority(authority string) bool {
	if s == nil {
		return false
	}
	_, ok := s.set[authority]
	return ok
}

// HasAnyAuthority reports whether at least one of authorities was granted.
func (s *SecurityContext) HasAnyAuthority(authorities ...string) bool {
	for _, a := range authorities {
		if s.HasAuthority(a) {
			return true
		}
	}
	return false
}

// SetSecurityContext stores sc on the request, both in fiber locals and in the user context.
func SetSecurityContext(c *fiber.Ctx, sc *SecurityContext) {
	c.Locals(securityContextKey, sc)
	c.SetUserContext(context.WithValue(c.UserContext(), securityContextCtxKey{}, sc))
}

// ClearSecurityContext removes any security context from the request.
func ClearSecurityContext(c *fiber.Ctx) {
	c.Locals(securityContextKey, nil)
	if _, ok := FromContext(c.UserContext()); ok {
		c.SetUserContext(context.WithValue(c.UserContext(), securityContextCtxKey{}, (*SecurityContext)(nil)))
	}
}

// SecurityContextFrom retrieves the authenticated principal of the request.
func SecurityContextFrom(c *fiber.Ctx) (*SecurityContext, bool) {
	val := c.Locals(securityContextKey)
	if val == nil {
		return nil, false
	}
	sc, ok := val.(*SecurityContext)
	return sc, ok && sc != nil
}

// FromContext retrieves the security context propagated through ctx.
func FromContext(ctx context.Context) (*SecurityContext, bool) {
	if ctx == nil {
		return nil, false
	}
	sc, ok := ctx.Value(securityContextCtxKey{}).(*SecurityContext)
	return sc, ok && sc != nil
}
