package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task matches the compound
// (id, userId) key. It deliberately covers both "does not exist" and
// "belongs to another user" so that ownership cannot be probed.
var ErrTaskNotFound = errors.New("task not found")

// sortColumns whitelists the sortable fields, mapping the JSON names the
// client sends to the underlying columns. Priority is handled in the
// service because its order is semantic, not lexicographic.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"dueDate":     "due_date",
	"completedAt": "completed_at",
	"title":       "title",
	"status":      "status",
}

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByIDAndUser retrieves a task by the compound (id, userId) key.
func (r *Repository) FindByIDAndUser(id, userID string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindByUser retrieves a user's tasks matching the query. All predicates are
// ANDed. Sorting is delegated to the store except for priority, which the
// caller sorts by rank; in that case the rows come back unordered.
func (r *Repository) FindByUser(userID string, q ListQuery, now time.Time) ([]*domain.Task, error) {
	tx := r.db.Where("user_id = ?", userID)

	if q.Status != "" && q.Status != "all" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Priority != "" && q.Priority != "all" {
		tx = tx.Where("priority = ?", q.Priority)
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	// Date-based filters use the local day for "today".
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.Add(24 * time.Hour)

	switch q.Filter {
	case "today":
		tx = tx.Where("due_date >= ? AND due_date < ?", today, tomorrow)
	case "upcoming":
		tx = tx.Where("due_date >= ? AND completed = ?", now, false)
	case "overdue":
		tx = tx.Where("due_date < ? AND completed = ?", now, false)
	case "completed":
		tx = tx.Where("completed = ?", true)
	case "active":
		tx = tx.Where("completed = ?", false)
	}

	if q.SortBy != "priority" {
		column, ok := sortColumns[q.SortBy]
		if !ok {
			column = "created_at"
		}
		direction := "DESC"
		if q.SortOrder == "asc" {
			direction = "ASC"
		}
		tx = tx.Order(column + " " + direction)
	}

	var tasks []*domain.Task
	if err := tx.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindAllByUser retrieves the user's full unfiltered task set, used by the
// statistics reduction.
func (r *Repository) FindAllByUser(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Save persists all fields of an existing task.
func (r *Repository) Save(task *domain.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// UpdateStatus persists only the derived status column. Used by the lazy
// overdue-correction pass on reads.
func (r *Repository) UpdateStatus(id string, status domain.Status) error {
	result := r.db.Model(&domain.Task{}).Where("id = ?", id).Update("status", status)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by the compound (id, userId) key.
func (r *Repository) Delete(id, userID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND user_id = ?", id, userID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
