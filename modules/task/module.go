package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task management services.
type TaskModule struct {
	db      *gorm.DB
	service *TaskService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule(dbPath string) *TaskModule {
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetCache wires the optional statistics cache after startup.
func (m *TaskModule) SetCache(c StatsCache) {
	if m.service != nil {
		m.service.SetCache(c)
	}
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewRepository(db))

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"create": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list", json.Unmarshal, json.Marshal, m.handleList)
		},
		"get": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		},
		"update": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update", json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		"delete": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		},
		"complete": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "complete", json.Unmarshal, json.Marshal, m.handleComplete)
		},
		"reset": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "reset", json.Unmarshal, json.Marshal, m.handleReset)
		},
		"stats": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "stats", json.Unmarshal, json.Marshal, m.handleStats)
		},
	}

	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered services: create, list, get, update, delete, complete, reset, stats")
	return nil
}

// handleCreate handles task creation.
func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Create(ctx, req.UserID, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *task}, nil
}

// handleList handles task listing with filters and sorting.
func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.UserID, req.Query)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{Tasks: make([]domain.Task, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, *t)
	}
	return resp, nil
}

// handleGet handles fetching a single task.
func (m *TaskModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Get(ctx, req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *task}, nil
}

// handleUpdate handles replacing a task's editable fields.
func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Update(ctx, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *task}, nil
}

// handleDelete handles task deletion.
func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false, TaskID: req.TaskID}, err
	}
	return DeleteTaskResponse{Deleted: true, TaskID: req.TaskID}, nil
}

// handleComplete handles marking a task completed.
func (m *TaskModule) handleComplete(ctx context.Context, req CompleteTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Complete(ctx, req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *task}, nil
}

// handleReset handles clearing a task's completion.
func (m *TaskModule) handleReset(ctx context.Context, req ResetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.service.Reset(ctx, req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *task}, nil
}

// handleStats handles the statistics overview.
func (m *TaskModule) handleStats(ctx context.Context, req StatisticsRequest, _ *mono.Msg) (Statistics, error) {
	return m.service.Statistics(ctx, req.UserID)
}
