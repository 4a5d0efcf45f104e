package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/domain/recurrence"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/infrastructure/metrics"
	"github.com/housekeep/core/internal/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TaskService drives the task lifecycle: Complete, Postpone and
// EditRecurrence, plus custom creation and listing.
type TaskService struct {
	taskRepo  ports.TaskRepository
	spaceRepo ports.SpaceRepository
	clock     ports.Clock
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, spaceRepo ports.SpaceRepository, clock ports.Clock, m *metrics.Metrics, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		spaceRepo: spaceRepo,
		clock:     clock,
		metrics:   m,
		logger:    logger.WithComponent("tasks"),
	}
}

// CreateTask creates a custom task in one of the user's spaces
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req ports.CreateTaskRequest) (*entities.TaskWithSpace, error) {
	space, err := s.spaceRepo.GetByID(ctx, req.SpaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("verify space: %w", err)
	}

	task, err := entities.NewTask(space, req.Name, req.RecurrenceValue, req.RecurrenceUnit, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.LogTaskEvent("task.created", userID, task.ID, "space_id", space.ID.String())

	return &entities.TaskWithSpace{Task: *task, Space: space.Summary()}, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, userID, id uuid.UUID) (*entities.TaskWithSpace, error) {
	task, err := s.taskRepo.GetWithSpace(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListTasks lists the user's tasks with filters. Sort keys are due_date and
// recurrence; the default orders by recurrence ascending.
func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID, q ports.TaskListQuery) (*ports.TaskPage, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	sortBy, sortOrder := ports.ParseSort(q.Sort, "recurrence", "asc")

	tasks, total, err := s.taskRepo.List(ctx, ports.TaskFilter{
		UserID:    userID,
		SpaceID:   q.SpaceID,
		Status:    q.Status,
		DueBefore: q.DueBefore,
		DueAfter:  q.DueAfter,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    ports.Offset(page, limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	pagination := ports.NewPagination(page, limit, total)
	if pagination.OutOfRange() {
		return nil, fmt.Errorf("page %d of %d: %w", page, pagination.TotalPages, entities.ErrPageOutOfRange)
	}

	return &ports.TaskPage{Data: tasks, Pagination: pagination}, nil
}

// CompleteTask closes the current cycle. A nil completedAt means now.
func (s *TaskService) CompleteTask(ctx context.Context, userID, id uuid.UUID, completedAt *time.Time) error {
	now := s.clock.Now()
	reference := now
	if completedAt != nil {
		reference = *completedAt
	}

	err := s.transition(ctx, "complete", userID, id, func(task *entities.Task) error {
		task.Complete(reference, now)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.LogTaskEvent("task.completed", userID, id, "completed_at", reference)
	return nil
}

// PostponeTask pushes the task to tomorrow, at most three times per cycle
func (s *TaskService) PostponeTask(ctx context.Context, userID, id uuid.UUID) error {
	now := s.clock.Now()

	err := s.transition(ctx, "postpone", userID, id, func(task *entities.Task) error {
		return task.Postpone(now)
	})
	if err != nil {
		return err
	}

	s.logger.LogTaskEvent("task.postponed", userID, id)
	return nil
}

// EditRecurrence changes the period and returns the updated task
func (s *TaskService) EditRecurrence(ctx context.Context, userID, id uuid.UUID, value int, unit recurrence.Unit) (*entities.TaskWithSpace, error) {
	now := s.clock.Now()

	err := s.transition(ctx, "edit_recurrence", userID, id, func(task *entities.Task) error {
		return task.EditRecurrence(value, unit, now)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTask(ctx, userID, id)
}

// DeleteTask removes the task. Deleting a task that does not exist
// returns entities.ErrTaskNotFound; callers wanting idempotency ignore it.
func (s *TaskService) DeleteTask(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.LogTaskEvent("task.deleted", userID, id)
	return nil
}

// transition loads the task, applies mutate and persists the result with
// a version check, so a concurrent writer surfaces as a conflict.
func (s *TaskService) transition(ctx context.Context, name string, userID, id uuid.UUID, mutate func(*entities.Task) error) error {
	task, err := s.taskRepo.GetByID(ctx, id, userID)
	if err != nil {
		s.metrics.TaskTransition(name, outcomeLabel(err))
		return fmt.Errorf("%s task: %w", name, err)
	}

	if err := mutate(task); err != nil {
		s.metrics.TaskTransition(name, outcomeLabel(err))
		return fmt.Errorf("%s task: %w", name, err)
	}

	if err := s.taskRepo.UpdateSchedule(ctx, task); err != nil {
		s.metrics.TaskTransition(name, outcomeLabel(err))
		if errors.Is(err, entities.ErrTaskVersionConflict) {
			s.logger.ForUser(userID).Warnw("Concurrent task update rejected", "task_id", id, "transition", name)
		}
		return fmt.Errorf("%s task: %w", name, err)
	}

	s.metrics.TaskTransition(name, "ok")
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrPostponementLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, entities.ErrTaskVersionConflict):
		return "conflict"
	case errors.Is(err, entities.ErrInvalidRecurrence):
		return "invalid"
	default:
		return "error"
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
