package task

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name      string
		completed bool
		dueDate   *time.Time
		want      Status
	}{
		{
			name:      "completed wins regardless of due date",
			completed: true,
			dueDate:   timePtr(yesterday),
			want:      StatusCompleted,
		},
		{
			name:      "completed without due date",
			completed: true,
			dueDate:   nil,
			want:      StatusCompleted,
		},
		{
			name:      "past due and not completed",
			completed: false,
			dueDate:   timePtr(yesterday),
			want:      StatusOverdue,
		},
		{
			name:      "future due date",
			completed: false,
			dueDate:   timePtr(tomorrow),
			want:      StatusActive,
		},
		{
			name:      "no due date",
			completed: false,
			dueDate:   nil,
			want:      StatusActive,
		},
		{
			name:      "due exactly now is not overdue",
			completed: false,
			dueDate:   timePtr(now),
			want:      StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.completed, tt.dueDate, now)
			if got != tt.want {
				t.Errorf("DeriveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyStatus_StampsCompletedAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	task := &Task{Completed: true}
	task.ApplyStatus(now)

	if task.Status != StatusCompleted {
		t.Errorf("Status = %v, want %v", task.Status, StatusCompleted)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, now)
	}

	// An already-set timestamp is preserved.
	earlier := now.Add(-time.Hour)
	task.CompletedAt = &earlier
	task.ApplyStatus(now)
	if !task.CompletedAt.Equal(earlier) {
		t.Errorf("CompletedAt = %v, want preserved %v", task.CompletedAt, earlier)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Priority
		ok    bool
	}{
		{name: "empty defaults to Low", input: "", want: PriorityLow, ok: true},
		{name: "exact High", input: "High", want: PriorityHigh, ok: true},
		{name: "case insensitive", input: "mEdIuM", want: PriorityMedium, ok: true},
		{name: "surrounding whitespace", input: "  low ", want: PriorityLow, ok: true},
		{name: "unknown level", input: "urgent", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriority(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParsePriority(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Errorf("priority ranks out of order: High=%d Medium=%d Low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if Priority("").Rank() != 0 {
		t.Errorf("unknown priority rank = %d, want 0", Priority("").Rank())
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	overdue := &Task{DueDate: &past}
	if !overdue.IsOverdue(now) {
		t.Error("expected task with past due date to be overdue")
	}

	done := &Task{Completed: true, DueDate: &past}
	if done.IsOverdue(now) {
		t.Error("completed task must not be overdue")
	}

	undated := &Task{}
	if undated.IsOverdue(now) {
		t.Error("task without due date must not be overdue")
	}
}
