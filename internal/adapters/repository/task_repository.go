package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

const taskColumns = `t.id, t.space_id, t.user_id, t.name, t.recurrence_value, t.recurrence_unit,
		t.due_date, t.status, t.postponement_count, t.last_completed_at,
		t.created_at, t.updated_at, t.version`

const taskWithSpaceSelect = `
		SELECT ` + taskColumns + `,
			s.id AS "space.id", s.name AS "space.name",
			s.space_type AS "space.space_type", s.icon AS "space.icon"
		FROM tasks t
		JOIN spaces s ON s.id = t.space_id`

// taskSortColumns maps public sort keys to ORDER BY expressions
var taskSortColumns = map[string][]string{
	"due_date":   {"t.due_date"},
	"name":       {"t.name"},
	"created_at": {"t.created_at"},
	"updated_at": {"t.updated_at"},
	"recurrence": {"t.recurrence_unit", "t.recurrence_value"},
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, space_id, user_id, name, recurrence_value, recurrence_unit,
			due_date, status, postponement_count, last_completed_at, created_at, updated_at, version)
		VALUES (:id, :space_id, :user_id, :name, :recurrence_value, :recurrence_unit,
			:due_date, :status, :postponement_count, :last_completed_at, :created_at, :updated_at, :version)`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Version == 0 {
		task.Version = 1
	}
	normalizeTaskTimes(task)

	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrDuplicateTaskName
		}
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = ? AND t.user_id = ?`)

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) GetWithSpace(ctx context.Context, id, userID uuid.UUID) (*entities.TaskWithSpace, error) {
	query := r.db.Rebind(taskWithSpaceSelect + ` WHERE t.id = ? AND t.user_id = ?`)

	var task entities.TaskWithSpace
	err := r.db.GetContext(ctx, &task, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task with space: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) UpdateSchedule(ctx context.Context, task *entities.Task) error {
	query := r.db.Rebind(`
		UPDATE tasks
		SET recurrence_value = ?, recurrence_unit = ?, due_date = ?, status = ?,
			postponement_count = ?, last_completed_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND user_id = ? AND version = ?`)

	normalizeTaskTimes(task)

	result, err := r.db.ExecContext(ctx, query,
		task.RecurrenceValue, task.RecurrenceUnit, task.DueDate, task.Status,
		task.PostponementCount, task.LastCompletedAt, task.UpdatedAt,
		task.ID, task.UserID, task.Version,
	)
	if err != nil {
		return fmt.Errorf("update task schedule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists int
		existsQuery := r.db.Rebind(`SELECT COUNT(*) FROM tasks WHERE id = ? AND user_id = ?`)
		if err := r.db.GetContext(ctx, &exists, existsQuery, task.ID, task.UserID); err != nil {
			return fmt.Errorf("check task existence: %w", err)
		}
		if exists == 0 {
			return entities.ErrTaskNotFound
		}
		return entities.ErrTaskVersionConflict
	}

	task.Version++
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error) {
	where := []string{"t.user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.SpaceID != nil {
		where = append(where, "t.space_id = ?")
		args = append(args, *filter.SpaceID)
	}
	if filter.Status != nil {
		where = append(where, "t.status = ?")
		args = append(args, *filter.Status)
	}
	if filter.DueFrom != nil {
		where = append(where, "t.due_date >= ?")
		args = append(args, dbTime(*filter.DueFrom))
	}
	if filter.DueAfter != nil {
		where = append(where, "t.due_date > ?")
		args = append(args, dbTime(*filter.DueAfter))
	}
	if filter.DueBefore != nil {
		where = append(where, "t.due_date < ?")
		args = append(args, dbTime(*filter.DueBefore))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM tasks t WHERE " + whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	columns, ok := taskSortColumns[filter.SortBy]
	if !ok {
		columns = taskSortColumns["due_date"]
	}
	direction := sortDirection(filter.SortOrder)
	order := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		order = append(order, c+" "+direction)
	}
	order = append(order, "t.id ASC")

	query := r.db.Rebind(taskWithSpaceSelect + `
		WHERE ` + whereClause + `
		ORDER BY ` + strings.Join(order, ", ") + `
		LIMIT ? OFFSET ?`)

	tasks := []*entities.TaskWithSpace{}
	if err := r.db.SelectContext(ctx, &tasks, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, total, nil
}

func normalizeTaskTimes(task *entities.Task) {
	task.DueDate = dbTime(task.DueDate)
	task.LastCompletedAt = dbTimePtr(task.LastCompletedAt)
	task.CreatedAt = dbTime(task.CreatedAt)
	task.UpdatedAt = dbTime(task.UpdatedAt)
}
