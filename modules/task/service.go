package task

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/task"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrTitleRequired is returned when the trimmed title is empty.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidPriority is returned for a priority outside Low/Medium/High.
	ErrInvalidPriority = errors.New("invalid priority")
)

// StatsCache is the caching surface the service needs for statistics.
// Implemented by the cache module; nil means caching is disabled.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// TaskService holds the task business logic: status derivation at every
// mutation site, the lazy overdue-correction pass on reads, and the
// statistics reduction.
type TaskService struct {
	repo    *Repository
	cache   StatsCache
	sfGroup singleflight.Group // Prevents stats recomputation stampede
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *Repository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

// SetCache wires the optional statistics cache.
func (s *TaskService) SetCache(c StatsCache) {
	s.cache = c
}

// Create validates the input, derives the initial status and persists the
// task for the owning user.
func (s *TaskService) Create(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     req.DueDate,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.ApplyStatus(now)

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	return task, nil
}

// List returns the user's tasks matching the query, sorted as requested.
// Priority sorting is done here by rank because the store's string ordering
// of the level names is wrong. Any returned task whose stored status went
// stale (due date passed while it sat "active") is corrected and persisted
// before the page is returned.
func (s *TaskService) List(ctx context.Context, userID string, q ListQuery) ([]*domain.Task, error) {
	now := time.Now()

	tasks, err := s.repo.FindByUser(userID, q, now)
	if err != nil {
		return nil, err
	}

	if q.SortBy == "priority" {
		asc := q.SortOrder == "asc"
		sort.SliceStable(tasks, func(i, j int) bool {
			if asc {
				return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
			}
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	}

	for _, t := range tasks {
		s.healOverdue(ctx, t, now)
	}

	return tasks, nil
}

// Get returns a single task scoped to the owning user, with the same lazy
// status re-evaluation as List.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}

	s.healOverdue(ctx, task, time.Now())
	return task, nil
}

// Update replaces the task's editable fields and re-derives the status.
func (s *TaskService) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}

	task, err := s.repo.FindByIDAndUser(req.TaskID, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Title = title
	task.Description = strings.TrimSpace(req.Description)
	task.DueDate = req.DueDate
	task.Priority = priority
	task.UpdatedAt = now
	task.ApplyStatus(now)

	if err := s.repo.Save(task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, req.UserID)
	return task, nil
}

// Complete marks the task completed. The completion timestamp is stamped
// unconditionally, so completing an already-completed task refreshes
// completedAt. That mirrors the original behavior; see the explicit test.
func (s *TaskService) Complete(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Completed = true
	task.CompletedAt = &now
	task.Status = domain.StatusCompleted
	task.UpdatedAt = now

	if err := s.repo.Save(task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	return task, nil
}

// Reset clears the completion flag and timestamp and re-derives the status
// from the due date.
func (s *TaskService) Reset(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Completed = false
	task.CompletedAt = nil
	task.UpdatedAt = now
	task.ApplyStatus(now)

	if err := s.repo.Save(task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	return task, nil
}

// Delete removes the task, scoped to the owning user.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.repo.Delete(taskID, userID); err != nil {
		return err
	}

	s.invalidateStats(ctx, userID)
	return nil
}

// Statistics computes the aggregate overview across the user's full task
// set as of now. Results are cached per user when a cache is wired;
// singleflight collapses concurrent recomputations for the same user.
func (s *TaskService) Statistics(ctx context.Context, userID string) (Statistics, error) {
	key := statsKey(userID)

	if s.cache != nil {
		var cached Statistics
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[task] Cache error for %s: %v", key, err)
		}
		if found {
			return cached, nil
		}
	}

	v, err, _ := s.sfGroup.Do(key, func() (any, error) {
		tasks, err := s.repo.FindAllByUser(userID)
		if err != nil {
			return Statistics{}, err
		}
		return computeStatistics(tasks, time.Now()), nil
	})
	if err != nil {
		return Statistics{}, err
	}
	stats := v.(Statistics)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats); err != nil {
			log.Printf("[task] Failed to cache %s: %v", key, err)
		}
	}

	return stats, nil
}

// healOverdue persists a corrected overdue status for a stale task. The
// write is not transactional with the read that found it; a concurrent
// complete/reset is a last-write-wins race, acceptable for a single-owner
// workload.
func (s *TaskService) healOverdue(_ context.Context, task *domain.Task, now time.Time) {
	if !task.IsOverdue(now) || task.Status == domain.StatusOverdue {
		return
	}

	task.Status = domain.StatusOverdue
	if err := s.repo.UpdateStatus(task.ID, domain.StatusOverdue); err != nil {
		log.Printf("[task] Failed to persist overdue status for %s: %v", task.ID, err)
	}
}

// invalidateStats drops the user's cached statistics after a mutation.
func (s *TaskService) invalidateStats(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsKey(userID)); err != nil {
		log.Printf("[task] Failed to invalidate stats cache for %s: %v", userID, err)
	}
}

// statsKey returns the cache key for a user's statistics.
func statsKey(userID string) string {
	return "stats:" + userID
}
