package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

type taskListParams struct {
	SpaceID string `validate:"omitempty,uuid"`
	Status  string `validate:"omitempty,oneof=pending postponed"`
	Page    int    `validate:"min=1"`
	Limit   int    `validate:"min=1,max=100"`
	Sort    string `validate:"oneof=due_date.asc due_date.desc recurrence.asc recurrence.desc"`
}

// ListTasks godoc
// @Summary List tasks
// @Description List the caller's tasks with optional filters
// @Tags tasks
// @Produce json
// @Param space_id query string false "Space ID"
// @Param status query string false "pending or postponed"
// @Param due_before query string false "RFC3339 upper bound (exclusive)"
// @Param due_after query string false "RFC3339 lower bound (exclusive)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param sort query string false "due_date.asc|due_date.desc|recurrence.asc|recurrence.desc" default(recurrence.asc)
// @Success 200 {object} PaginatedResponse[entities.TaskWithSpace]
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	params := taskListParams{Page: 1, Limit: 20, Sort: "recurrence.asc"}
	var dueBefore, dueAfter time.Time

	err := echo.QueryParamsBinder(c).
		String("space_id", &params.SpaceID).
		String("status", &params.Status).
		Time("due_before", &dueBefore, time.RFC3339).
		Time("due_after", &dueAfter, time.RFC3339).
		Int("page", &params.Page).
		Int("limit", &params.Limit).
		String("sort", &params.Sort).
		BindError()
	if err != nil {
		return apiError(http.StatusBadRequest, "validation_error", "Invalid query parameters")
	}
	if err := c.Validate(&params); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	q := ports.TaskListQuery{Page: params.Page, Limit: params.Limit, Sort: params.Sort}
	if params.SpaceID != "" {
		id := uuid.MustParse(params.SpaceID)
		q.SpaceID = &id
	}
	if params.Status != "" {
		status := entities.TaskStatus(params.Status)
		q.Status = &status
	}
	if !dueBefore.IsZero() {
		q.DueBefore = &dueBefore
	}
	if !dueAfter.IsZero() {
		q.DueAfter = &dueAfter
	}

	page, err := h.taskService.ListTasks(c.Request().Context(), getUserIDFromContext(c), q)
	if err != nil {
		if errors.Is(err, entities.ErrPageOutOfRange) {
			return withStatus(domainError(err), http.StatusNotFound)
		}
		return domainError(err)
	}

	return c.JSON(http.StatusOK, paginated(page))
}

// CreateTask godoc
// @Summary Create a custom task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.TaskWithSpace
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, http.StatusBadRequest)
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), userID, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.TaskWithSpace
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := pathID(c, "task")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// EditRecurrence godoc
// @Summary Change a task's recurrence
// @Description Stores the new period and recomputes the due date from the last completion, or from now when never completed
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.EditRecurrenceRequest true "New recurrence"
// @Success 200 {object} entities.TaskWithSpace
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) EditRecurrence(c echo.Context) error {
	id, err := pathID(c, "task")
	if err != nil {
		return err
	}

	var req ports.EditRecurrenceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, http.StatusUnprocessableEntity)
	}

	task, err := h.taskService.EditRecurrence(c.Request().Context(), getUserIDFromContext(c), id, req.RecurrenceValue, req.RecurrenceUnit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Idempotent: deleting a missing task also returns 204
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := pathID(c, "task")
	if err != nil {
		return err
	}

	err = h.taskService.DeleteTask(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil && !errors.Is(err, entities.ErrTaskNotFound) {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteTask godoc
// @Summary Complete a task
// @Description Starts a new cycle from completed_at, or from now when omitted
// @Tags tasks
// @Accept json
// @Param id path string true "Task ID"
// @Param request body ports.CompleteTaskRequest false "Completion time"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	id, err := pathID(c, "task")
	if err != nil {
		return err
	}

	var req ports.CompleteTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.taskService.CompleteTask(c.Request().Context(), getUserIDFromContext(c), id, req.CompletedAt); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PostponeTask godoc
// @Summary Postpone a task by one day
// @Description At most three postponements per cycle
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/postpone [post]
func (h *TaskHandler) PostponeTask(c echo.Context) error {
	id, err := pathID(c, "task")
	if err != nil {
		return err
	}

	if err := h.taskService.PostponeTask(c.Request().Context(), getUserIDFromContext(c), id); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
