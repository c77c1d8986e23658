package task

import (
	"math"
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/task"
)

// Statistics is the aggregate overview of a user's full task set.
// Field names match the client contract of the stats endpoint.
type Statistics struct {
	Total            int `json:"total"`
	Completed        int `json:"completed"`
	CompletedOnTime  int `json:"completedOnTime"`
	CompletedOverdue int `json:"completedOverdue"`
	Active           int `json:"active"`
	Overdue          int `json:"overdue"`
	High             int `json:"high"`
	Medium           int `json:"medium"`
	Low              int `json:"low"`
	HighCompleted    int `json:"highCompleted"`
	MediumCompleted  int `json:"mediumCompleted"`
	LowCompleted     int `json:"lowCompleted"`
	CompletionRate   int `json:"completionRate"`
	OnTimeRate       int `json:"onTimeRate"`
}

// computeStatistics reduces the task set into the overview counts as of now.
// This is the in-service equivalent of the store-side aggregation: one pass,
// same field semantics. A completed task counts as on time when it has no
// due date or was completed at or before it.
func computeStatistics(tasks []*domain.Task, now time.Time) Statistics {
	var stats Statistics

	for _, t := range tasks {
		stats.Total++

		if t.Completed {
			stats.Completed++
			if t.DueDate == nil || (t.CompletedAt != nil && !t.CompletedAt.After(*t.DueDate)) {
				stats.CompletedOnTime++
			} else if t.DueDate != nil && t.CompletedAt != nil && t.CompletedAt.After(*t.DueDate) {
				stats.CompletedOverdue++
			}
		} else if t.DueDate != nil && t.DueDate.Before(now) {
			stats.Overdue++
		} else {
			stats.Active++
		}

		switch t.Priority {
		case domain.PriorityHigh:
			stats.High++
			if t.Completed {
				stats.HighCompleted++
			}
		case domain.PriorityMedium:
			stats.Medium++
			if t.Completed {
				stats.MediumCompleted++
			}
		case domain.PriorityLow:
			stats.Low++
			if t.Completed {
				stats.LowCompleted++
			}
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	if stats.Completed > 0 {
		stats.OnTimeRate = int(math.Round(float64(stats.CompletedOnTime) / float64(stats.Completed) * 100))
	}

	return stats
}
