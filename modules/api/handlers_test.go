package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Service errors cross the module boundary as plain messages, so the
// mapping to status codes is worth pinning down.
func TestHandleAuthError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing fields",
			err:            errors.New("all fields are required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "All fields are required",
		},
		{
			name:           "short password",
			err:            errors.New("password must be at least 6 characters long"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Password must be at least 6 characters long",
		},
		{
			name:           "short username",
			err:            errors.New("username must be at least 3 characters long"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Username must be at least 3 characters long",
		},
		{
			name:           "email conflict",
			err:            errors.New("email already exists"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Email already exists",
		},
		{
			name:           "username conflict",
			err:            errors.New("username already exists"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Username already exists",
		},
		{
			name:           "bad credentials",
			err:            errors.New("invalid credentials"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid credentials",
		},
		{
			name:           "user missing",
			err:            errors.New("user not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "User not found",
		},
		{
			name:           "anything else is a server error",
			err:            errors.New("database on fire"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Server error",
		},
	}

	h := &Handlers{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := invokeErrorMapper(t, func(c *fiber.Ctx) error {
				return h.handleAuthError(c, tt.err)
			})
			if status != tt.expectedStatus {
				t.Errorf("status = %v, want %v", status, tt.expectedStatus)
			}
			if !strings.Contains(body, tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", body, tt.expectedBody)
			}
		})
	}
}

func TestHandleTaskError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing title",
			err:            errors.New("title is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Title is required",
		},
		{
			name:           "bad priority",
			err:            errors.New("invalid priority"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid priority",
		},
		{
			name:           "missing or foreign task",
			err:            errors.New("task not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task not found",
		},
		{
			name:           "anything else is a server error",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Server error",
		},
	}

	h := &Handlers{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := invokeErrorMapper(t, func(c *fiber.Ctx) error {
				return h.handleTaskError(c, tt.err)
			})
			if status != tt.expectedStatus {
				t.Errorf("status = %v, want %v", status, tt.expectedStatus)
			}
			if !strings.Contains(body, tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", body, tt.expectedBody)
			}
		})
	}
}

// invokeErrorMapper runs a handler through a throwaway Fiber app and
// returns the status and body it produced.
func invokeErrorMapper(t *testing.T, handler fiber.Handler) (int, string) {
	t.Helper()

	app := fiber.New()
	app.Get("/test", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}

	return resp.StatusCode, string(body)
}
