package auth

import (
	domain "github.com/ThulyaRodrigo/ToDoApp/domain/user"
)

// SignupRequest represents a signup request.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse represents a signup response with a token for immediate login.
type SignupResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// LoginRequest represents a login request. The identifier field accepts
// either an email address or a username.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID string `json:"userId"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	User domain.PublicUser `json:"user"`
}
