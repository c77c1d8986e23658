package api

import (
	domain "github.com/ThulyaRodrigo/ToDoApp/domain/user"
)

// SignupRequest is the body of the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of the login endpoint. The identifier field
// accepts either an email address or a username.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

// MeResponse is returned by the current-user endpoint.
type MeResponse struct {
	User domain.PublicUser `json:"user"`
}

// MessageResponse is a bare acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body shape for every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}
