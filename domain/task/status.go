package task

import (
	"strings"
	"time"
)

// Priority is the task priority level.
type Priority string

// Priority levels, ordered Low < Medium < High.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status is the derived task status.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// ParsePriority normalizes a priority string to one of the three levels.
// An empty string defaults to Low; anything else unrecognized is rejected.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityLow, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Rank maps a priority to its numeric order (High=3, Medium=2, Low=1).
// Sorting by priority must use this rank: the lexicographic order of the
// level names does not match their severity.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// DeriveStatus computes the status as a pure function of the completion flag
// and due date. Every mutation site calls this; read paths re-evaluate it
// against the current time so a stored status can never be observably stale.
func DeriveStatus(completed bool, dueDate *time.Time, now time.Time) Status {
	if completed {
		return StatusCompleted
	}
	if dueDate != nil && dueDate.Before(now) {
		return StatusOverdue
	}
	return StatusActive
}

// ApplyStatus re-derives the task's status in place and stamps CompletedAt
// when the task is completed and the timestamp is not yet set.
func (t *Task) ApplyStatus(now time.Time) {
	t.Status = DeriveStatus(t.Completed, t.DueDate, now)
	if t.Completed && t.CompletedAt == nil {
		ts := now
		t.CompletedAt = &ts
	}
}
