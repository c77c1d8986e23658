package task

import (
	"errors"
	"testing"
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTask inserts a task directly, bypassing the service layer.
func seedTask(t *testing.T, db *gorm.DB, task *domain.Task) *domain.Task {
	t.Helper()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityLow
	}
	if task.Status == "" {
		task.Status = domain.DeriveStatus(task.Completed, task.DueDate, time.Now())
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = task.CreatedAt

	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func TestRepository_FindByIDAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	owner := uuid.New().String()
	other := uuid.New().String()
	task := seedTask(t, db, &domain.Task{UserID: owner, Title: "Mine"})

	t.Run("owner finds task", func(t *testing.T) {
		found, err := repo.FindByIDAndUser(task.ID, owner)
		if err != nil {
			t.Fatalf("FindByIDAndUser() error = %v", err)
		}
		if found.Title != "Mine" {
			t.Errorf("expected title %q, got %q", "Mine", found.Title)
		}
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := repo.FindByIDAndUser(task.ID, other)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("unknown id gets not found", func(t *testing.T) {
		_, err := repo.FindByIDAndUser("no-such-task", owner)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestRepository_FindByUser_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New().String()
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	inTwoHours := now.Add(2 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	seedTask(t, db, &domain.Task{UserID: userID, Title: "Overdue report", DueDate: &yesterday})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "Due today", DueDate: &inTwoHours})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "Next week", DueDate: &nextWeek})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "Done", Completed: true, CompletedAt: &now})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "No due date"})
	// Another user's task must never leak in.
	seedTask(t, db, &domain.Task{UserID: uuid.New().String(), Title: "Someone else"})

	tests := []struct {
		name   string
		query  ListQuery
		titles map[string]bool
	}{
		{
			name:  "no filters returns all owned tasks",
			query: ListQuery{},
			titles: map[string]bool{
				"Overdue report": true, "Due today": true, "Next week": true,
				"Done": true, "No due date": true,
			},
		},
		{
			name:   "filter overdue",
			query:  ListQuery{Filter: "overdue"},
			titles: map[string]bool{"Overdue report": true},
		},
		{
			name:   "filter upcoming excludes completed and past due",
			query:  ListQuery{Filter: "upcoming"},
			titles: map[string]bool{"Due today": true, "Next week": true},
		},
		{
			name:   "filter completed",
			query:  ListQuery{Filter: "completed"},
			titles: map[string]bool{"Done": true},
		},
		{
			name:  "filter active",
			query: ListQuery{Filter: "active"},
			titles: map[string]bool{
				"Overdue report": true, "Due today": true,
				"Next week": true, "No due date": true,
			},
		},
		{
			name:   "status filter",
			query:  ListQuery{Status: "overdue"},
			titles: map[string]bool{"Overdue report": true},
		},
		{
			name:  "status all is a no-op",
			query: ListQuery{Status: "all"},
			titles: map[string]bool{
				"Overdue report": true, "Due today": true, "Next week": true,
				"Done": true, "No due date": true,
			},
		},
		{
			name:   "search is case insensitive",
			query:  ListQuery{Search: "REPORT"},
			titles: map[string]bool{"Overdue report": true},
		},
		{
			name:   "search with no match returns empty",
			query:  ListQuery{Search: "zzz"},
			titles: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := repo.FindByUser(userID, tt.query, now)
			if err != nil {
				t.Fatalf("FindByUser() error = %v", err)
			}
			if len(tasks) != len(tt.titles) {
				t.Fatalf("expected %d tasks, got %d", len(tt.titles), len(tasks))
			}
			for _, task := range tasks {
				if !tt.titles[task.Title] {
					t.Errorf("unexpected task %q in result", task.Title)
				}
			}
		})
	}
}

func TestRepository_FindByUser_TodayFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New().String()
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	earlyToday := startOfDay.Add(1 * time.Minute)
	lateYesterday := startOfDay.Add(-1 * time.Minute)
	earlyTomorrow := startOfDay.Add(24*time.Hour + time.Minute)

	seedTask(t, db, &domain.Task{UserID: userID, Title: "Today", DueDate: &earlyToday})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "Yesterday", DueDate: &lateYesterday})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "Tomorrow", DueDate: &earlyTomorrow})

	tasks, err := repo.FindByUser(userID, ListQuery{Filter: "today"}, now)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Today" {
		t.Fatalf("expected only the task due today, got %d tasks", len(tasks))
	}
}

func TestRepository_FindByUser_Sorting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New().String()
	now := time.Now()

	seedTask(t, db, &domain.Task{UserID: userID, Title: "banana", CreatedAt: now.Add(-3 * time.Hour)})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "apple", CreatedAt: now.Add(-2 * time.Hour)})
	seedTask(t, db, &domain.Task{UserID: userID, Title: "cherry", CreatedAt: now.Add(-1 * time.Hour)})

	t.Run("default is createdAt descending", func(t *testing.T) {
		tasks, err := repo.FindByUser(userID, ListQuery{}, now)
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		want := []string{"cherry", "apple", "banana"}
		for i, title := range want {
			if tasks[i].Title != title {
				t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
			}
		}
	})

	t.Run("sort by title ascending", func(t *testing.T) {
		tasks, err := repo.FindByUser(userID, ListQuery{SortBy: "title", SortOrder: "asc"}, now)
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		want := []string{"apple", "banana", "cherry"}
		for i, title := range want {
			if tasks[i].Title != title {
				t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
			}
		}
	})

	t.Run("unknown sort field falls back to createdAt", func(t *testing.T) {
		tasks, err := repo.FindByUser(userID, ListQuery{SortBy: "title; DROP TABLE tasks"}, now)
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		if tasks[0].Title != "cherry" {
			t.Errorf("expected createdAt descending fallback, got %q first", tasks[0].Title)
		}
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := seedTask(t, db, &domain.Task{UserID: uuid.New().String(), Title: "Stale"})

	if err := repo.UpdateStatus(task.ID, domain.StatusOverdue); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	var found domain.Task
	if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to reload task: %v", err)
	}
	if found.Status != domain.StatusOverdue {
		t.Errorf("expected status %q, got %q", domain.StatusOverdue, found.Status)
	}

	if err := repo.UpdateStatus("no-such-task", domain.StatusOverdue); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	owner := uuid.New().String()
	task := seedTask(t, db, &domain.Task{UserID: owner, Title: "To delete"})

	t.Run("other user cannot delete", func(t *testing.T) {
		err := repo.Delete(task.ID, uuid.New().String())
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if err := repo.Delete(task.ID, owner); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		_, err := repo.FindByIDAndUser(task.ID, owner)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
		}
	})
}
