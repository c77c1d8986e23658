package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ThulyaRodrigo/ToDoApp/modules/api"
	"github.com/ThulyaRodrigo/ToDoApp/modules/auth"
	"github.com/ThulyaRodrigo/ToDoApp/modules/cache"
	"github.com/ThulyaRodrigo/ToDoApp/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== ToDoApp API ===")

	dbPath := getEnv("TODO_DB_PATH", "todoapp.db")
	port := getEnv("PORT", "5000")
	corsOrigins := getEnv("CORS_ORIGINS", "*")
	redisAddr := os.Getenv("REDIS_ADDR")
	statsTTL := getEnvDuration("STATS_CACHE_TTL", time.Minute)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	cacheModule := cache.NewModule(redisAddr, "todoapp:", statsTTL)
	taskModule := task.NewModule(dbPath)

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(cacheModule)
	app.Register(auth.NewModule(dbPath))
	app.Register(taskModule)
	app.Register(api.NewModule(port, corsOrigins)) // Depends on auth and task modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// The cache is optional. Only wire it once we know Redis answered.
	if c := cacheModule.GetCache(); c != nil {
		taskModule.SetCache(c)
	}

	printStartupInfo(port)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port string) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/signup           - Register a new account")
	log.Println("  POST   /api/auth/login            - Login with email or username")
	log.Println("  GET    /health                    - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/auth/me               - Current user")
	log.Println("  POST   /api/auth/logout           - Logout")
	log.Println("  GET    /api/tasks                 - List tasks (filter/sort/search)")
	log.Println("  POST   /api/tasks                 - Create a task")
	log.Println("  GET    /api/tasks/stats/overview  - Statistics overview")
	log.Println("  GET    /api/tasks/:id             - Get a task")
	log.Println("  PUT    /api/tasks/:id             - Update a task")
	log.Println("  DELETE /api/tasks/:id             - Delete a task")
	log.Println("  PATCH  /api/tasks/:id/complete    - Mark completed")
	log.Println("  PATCH  /api/tasks/:id/reset       - Clear completion")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns the environment variable value or a fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration returns the environment variable parsed as a duration, or
// a fallback when unset or unparsable.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
