package dto

import "time"

// LoginRequest accepts credentials as form fields, JSON or query parameters.
type LoginRequest struct {
	User     string `json:"user" form:"user" query:"user"`
	Password string `json:"password" form:"password" query:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginFailureResponse is returned when credentials are rejected.
type LoginFailureResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PrincipalResponse describes the caller of a protected endpoint.
type PrincipalResponse struct {
	Principal   string   `json:"principal"`
	Authorities []string `json:"authorities"`
}
