package task

import (
	"time"
)

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"index;not null;size:36" json:"userId"`
	Title       string     `gorm:"not null;size:200" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `gorm:"not null;size:10;default:Low" json:"priority"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Status      Status     `gorm:"not null;size:10;default:active" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task is past due and not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}
