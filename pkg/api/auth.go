package api

import "github.com/docport/portal/internal/models"

// LoginRequest represents the credentials sent to /auth/login.
// Username is normalized (trimmed, lowercased) by the session store
// before the request is built.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful authentication.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

// RegisterRequest represents a new account request sent to /auth/register.
// Role is optional; the backend defaults it when absent.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

// RegisterResponse represents the registration outcome. Registration
// does not authenticate the caller; the confirmation message is shown
// and the user logs in separately.
type RegisterResponse struct {
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// ErrorResponse is the error envelope the backend returns on non-2xx
// statuses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
