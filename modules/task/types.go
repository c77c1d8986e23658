package task

import (
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/task"
)

// ListQuery carries the list endpoint's query parameters. Zero values fall
// back to the defaults (sort by createdAt, descending, no filtering).
type ListQuery struct {
	Status    string `json:"status,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
}

// TaskResponse wraps a single task in service replies.
type TaskResponse struct {
	Task domain.Task `json:"task"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string    `json:"userId"`
	Query  ListQuery `json:"query"`
}

// ListTasksResponse is the reply containing the filtered, sorted task page.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
}

// UpdateTaskRequest is the request for replacing a task's editable fields.
// Matching the original PUT semantics, absent description clears it and
// absent priority resets to Low.
type UpdateTaskRequest struct {
	UserID      string     `json:"userId"`
	TaskID      string     `json:"taskId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
}

// DeleteTaskResponse is the reply after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	TaskID  string `json:"taskId"`
}

// CompleteTaskRequest is the request for marking a task completed.
type CompleteTaskRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
}

// ResetTaskRequest is the request for clearing a task's completion.
type ResetTaskRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
}

// StatisticsRequest is the request for the per-user statistics overview.
type StatisticsRequest struct {
	UserID string `json:"userId"`
}
