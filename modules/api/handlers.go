package api

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/user"
	"github.com/ThulyaRodrigo/ToDoApp/modules/auth"
	"github.com/ThulyaRodrigo/ToDoApp/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		taskContainer: taskContainer,
		authAdapter:   authAdapter,
	}
}

// TaskBody is the client-facing body for creating and updating tasks. The
// owner is always taken from the token, never from the body.
type TaskBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
}

// Signup handles user registration.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	authReq := auth.SignupRequest{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.SignupResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"signup",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message: "User registered successfully",
		Token:   resp.Token,
		User:    resp.User,
	})
}

// Login handles user login with an email address or a username.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if req.EmailOrUsername == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "All fields are required",
		})
	}

	authReq := auth.LoginRequest{
		EmailOrUsername: req.EmailOrUsername,
		Password:        req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Message: "Login successful",
		Token:   resp.Token,
		User:    resp.User,
	})
}

// Me returns the authenticated user's public record.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MeResponse{User: *user})
}

// Logout acknowledges logout. Tokens are stateless, so the client simply
// discards its copy.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Logout successful",
	})
}

// CreateTask handles task creation for the authenticated user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	var body TaskBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	req := task.CreateTaskRequest{
		UserID:      claims.UserID,
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
		Priority:    body.Priority,
	}
	var resp task.TaskResponse

	if err := callTask(h, c, "create", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp.Task)
}

// ListTasks returns the authenticated user's tasks, filtered and sorted
// according to the query parameters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	req := task.ListTasksRequest{
		UserID: claims.UserID,
		Query: task.ListQuery{
			Status:    c.Query("status"),
			Priority:  c.Query("priority"),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
			Filter:    c.Query("filter"),
		},
	}
	var resp task.ListTasksResponse

	if err := callTask(h, c, "list", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Tasks)
}

// GetTask returns a single task owned by the authenticated user.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	req := task.GetTaskRequest{UserID: claims.UserID, TaskID: c.Params("id")}
	var resp task.TaskResponse

	if err := callTask(h, c, "get", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Task)
}

// UpdateTask replaces a task's editable fields.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	var body TaskBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
		})
	}

	req := task.UpdateTaskRequest{
		UserID:      claims.UserID,
		TaskID:      c.Params("id"),
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
		Priority:    body.Priority,
	}
	var resp task.TaskResponse

	if err := callTask(h, c, "update", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Task)
}

// DeleteTask removes a task owned by the authenticated user.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	req := task.DeleteTaskRequest{UserID: claims.UserID, TaskID: c.Params("id")}
	var resp task.DeleteTaskResponse

	if err := callTask(h, c, "delete", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Task deleted successfully",
	})
}

// CompleteTask marks a task completed.
func (h *Handlers) CompleteTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	req := task.CompleteTaskRequest{UserID: claims.UserID, TaskID: c.Params("id")}
	var resp task.TaskResponse

	if err := callTask(h, c, "complete", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Task)
}

// ResetTask clears a task's completion.
func (h *Handlers) ResetTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	req := task.ResetTaskRequest{UserID: claims.UserID, TaskID: c.Params("id")}
	var resp task.TaskResponse

	if err := callTask(h, c, "reset", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp.Task)
}

// Stats returns the statistics overview across the user's full task set.
func (h *Handlers) Stats(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Token is not valid",
		})
	}

	req := task.StatisticsRequest{UserID: claims.UserID}
	var resp task.Statistics

	if err := callTask(h, c, "stats", &req, &resp); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// callTask invokes a task module service through the container.
func callTask[T1 any, T2 any](h *Handlers, c *fiber.Ctx, service string, req *T1, resp *T2) error {
	return helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	)
}

// currentClaims pulls the authenticated identity set by AuthMiddleware.
func currentClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// handleAuthError maps auth service errors to HTTP responses. Errors cross
// the module boundary as messages, so matching is by substring.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "all fields are required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "All fields are required",
		})
	case strings.Contains(errStr, "password must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Password must be at least 6 characters long",
		})
	case strings.Contains(errStr, "username must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Username must be at least 3 characters long",
		})
	case strings.Contains(errStr, "email already exists"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Email already exists",
		})
	case strings.Contains(errStr, "username already exists"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Username already exists",
		})
	case strings.Contains(errStr, "invalid credentials"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid credentials",
		})
	case strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "User not found",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Server error",
		})
	}
}

// handleTaskError maps task service errors to HTTP responses.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "title is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Title is required",
		})
	case strings.Contains(errStr, "invalid priority"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid priority",
		})
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Task not found",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Server error",
		})
	}
}
