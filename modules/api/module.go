package api

import (
	"context"
	"fmt"
	"log"

	"github.com/ThulyaRodrigo/ToDoApp/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app           *fiber.App
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	port          string
	corsOrigins   string
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on the given port.
func NewModule(port, corsOrigins string) *APIModule {
	return &APIModule{
		port:        port,
		corsOrigins: corsOrigins,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskContainer == nil {
		return fmt.Errorf("task dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New(cors.Config{
		AllowOrigins: m.corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.taskContainer, m.authAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := m.app.Group("/api")

	// Public auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", handlers.Signup)
	authRoutes.Post("/login", handlers.Login)

	// Protected auth routes
	authRoutes.Get("/me", AuthMiddleware(m.authAdapter), handlers.Me)
	authRoutes.Post("/logout", AuthMiddleware(m.authAdapter), handlers.Logout)

	// Task routes, all protected
	tasks := api.Group("/tasks")
	tasks.Use(AuthMiddleware(m.authAdapter))
	tasks.Get("/", handlers.ListTasks)
	tasks.Post("/", handlers.CreateTask)
	// The stats route must be registered before the :id routes, otherwise
	// "stats" would be captured as a task ID.
	tasks.Get("/stats/overview", handlers.Stats)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Delete("/:id", handlers.DeleteTask)
	tasks.Patch("/:id/complete", handlers.CompleteTask)
	tasks.Patch("/:id/reset", handlers.ResetTask)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Message: message,
	})
}
