package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/recurrence"
)

// Common errors
var (
	ErrTaskNotFound              = errors.New("task not found")
	ErrSpaceNotFound             = errors.New("space not found")
	ErrTemplateNotFound          = errors.New("task template not found")
	ErrSpaceTypeNotFound         = errors.New("space type not found")
	ErrMessageNotFound           = errors.New("motivational message not found")
	ErrDuplicateTaskName         = errors.New("a task with this name already exists in the space")
	ErrDuplicateSpaceName        = errors.New("a space with this name already exists")
	ErrPostponementLimitExceeded = errors.New("postponement limit reached")
	ErrTaskVersionConflict       = errors.New("task was modified concurrently")
	ErrInvalidRecurrence         = errors.New("invalid recurrence")
	ErrPageOutOfRange            = errors.New("page out of range")
	ErrRateLimited               = errors.New("rate limit exceeded")
	ErrGeneratorUnavailable      = errors.New("text generator unavailable")
)

// MaxPostponements is how many times a task may be postponed within one cycle.
const MaxPostponements = 3

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusPostponed TaskStatus = "postponed"
)

func (s TaskStatus) IsValid() bool {
	return s == TaskStatusPending || s == TaskStatusPostponed
}

type Tone string

const (
	ToneEncouraging Tone = "encouraging"
	TonePlayful     Tone = "playful"
	ToneNeutral     Tone = "neutral"
)

func (t Tone) IsValid() bool {
	switch t {
	case ToneEncouraging, TonePlayful, ToneNeutral:
		return true
	default:
		return false
	}
}

// DashboardSection selects a due-date window relative to the start of today.
type DashboardSection string

const (
	SectionOverdue  DashboardSection = "overdue"
	SectionToday    DashboardSection = "today"
	SectionUpcoming DashboardSection = "upcoming"
	SectionAll      DashboardSection = "all"
)

func (s DashboardSection) IsValid() bool {
	switch s {
	case SectionOverdue, SectionToday, SectionUpcoming, SectionAll:
		return true
	default:
		return false
	}
}

// Space groups tasks belonging to one owner
type Space struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	SpaceType *string   `json:"space_type" db:"space_type"`
	Icon      *string   `json:"icon" db:"icon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SpaceSummary is the slice of a space embedded into task views
type SpaceSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SpaceType *string   `json:"space_type" db:"space_type"`
	Icon      *string   `json:"icon" db:"icon"`
}

// Summary returns the embedded view of the space
func (s *Space) Summary() SpaceSummary {
	return SpaceSummary{ID: s.ID, Name: s.Name, SpaceType: s.SpaceType, Icon: s.Icon}
}

// Task is a recurring chore
type Task struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	SpaceID           uuid.UUID       `json:"space_id" db:"space_id"`
	UserID            uuid.UUID       `json:"user_id" db:"user_id"`
	Name              string          `json:"name" db:"name"`
	RecurrenceValue   int             `json:"recurrence_value" db:"recurrence_value"`
	RecurrenceUnit    recurrence.Unit `json:"recurrence_unit" db:"recurrence_unit"`
	DueDate           time.Time       `json:"due_date" db:"due_date"`
	Status            TaskStatus      `json:"status" db:"status"`
	PostponementCount int             `json:"postponement_count" db:"postponement_count"`
	LastCompletedAt   *time.Time      `json:"last_completed_at" db:"last_completed_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
	Version           int             `json:"-" db:"version"`
}

// TaskWithSpace is a task together with a summary of its space
type TaskWithSpace struct {
	Task
	Space SpaceSummary `json:"space" db:"space"`
}

// SpaceType is a system-seeded kind of space
type SpaceType struct {
	ID           int     `json:"id" db:"id" yaml:"-"`
	Code         string  `json:"code" db:"code" yaml:"code"`
	DisplayName  string  `json:"display_name" db:"display_name" yaml:"display_name"`
	Icon         *string `json:"icon" db:"icon" yaml:"icon"`
	DisplayOrder int     `json:"display_order" db:"display_order" yaml:"display_order"`
}

// TaskTemplate is a predefined chore suggested for a space type
type TaskTemplate struct {
	ID                     uuid.UUID       `json:"id" db:"id" yaml:"-"`
	SpaceType              string          `json:"space_type" db:"space_type" yaml:"space_type"`
	TaskName               string          `json:"task_name" db:"task_name" yaml:"task_name"`
	DefaultRecurrenceValue int             `json:"default_recurrence_value" db:"default_recurrence_value" yaml:"default_recurrence_value"`
	DefaultRecurrenceUnit  recurrence.Unit `json:"default_recurrence_unit" db:"default_recurrence_unit" yaml:"default_recurrence_unit"`
	DisplayOrder           int             `json:"display_order" db:"display_order" yaml:"display_order"`
}

// MotivationalMessage is a generated nudge attached to a task
type MotivationalMessage struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TaskID      uuid.UUID `json:"task_id" db:"task_id"`
	MessageText string    `json:"message_text" db:"message_text"`
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
}

// NewTask builds a pending task whose first due date is one period after now.
func NewTask(space *Space, name string, value int, unit recurrence.Unit, now time.Time) (*Task, error) {
	if value <= 0 || !unit.IsValid() {
		return nil, ErrInvalidRecurrence
	}

	return &Task{
		ID:              uuid.New(),
		SpaceID:         space.ID,
		UserID:          space.UserID,
		Name:            name,
		RecurrenceValue: value,
		RecurrenceUnit:  unit,
		DueDate:         recurrence.DueDate(now, value, unit),
		Status:          TaskStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}, nil
}

// Business logic methods for Task

// Complete starts a new cycle measured from completedAt.
func (t *Task) Complete(completedAt, now time.Time) {
	t.LastCompletedAt = &completedAt
	t.PostponementCount = 0
	t.DueDate = recurrence.DueDate(completedAt, t.RecurrenceValue, t.RecurrenceUnit)
	t.Status = TaskStatusPending
	t.UpdatedAt = now
}

func (t *Task) CanPostpone() bool {
	return t.PostponementCount < MaxPostponements
}

func (t *Task) RemainingPostponements() int {
	if !t.CanPostpone() {
		return 0
	}
	return MaxPostponements - t.PostponementCount
}

// Postpone moves the task to one day after now. The previous due date is
// not taken into account.
func (t *Task) Postpone(now time.Time) error {
	if !t.CanPostpone() {
		return ErrPostponementLimitExceeded
	}

	t.PostponementCount++
	t.DueDate = now.AddDate(0, 0, 1)
	t.Status = TaskStatusPostponed
	t.UpdatedAt = now
	return nil
}

// EditRecurrence replaces the period and recomputes the due date from the
// last completion, or from now when the task was never completed.
func (t *Task) EditRecurrence(value int, unit recurrence.Unit, now time.Time) error {
	if value <= 0 || !unit.IsValid() {
		return ErrInvalidRecurrence
	}

	reference := now
	if t.LastCompletedAt != nil {
		reference = *t.LastCompletedAt
	}

	t.RecurrenceValue = value
	t.RecurrenceUnit = unit
	t.DueDate = recurrence.DueDate(reference, value, unit)
	t.UpdatedAt = now
	return nil
}

// IsOverdue reports whether the task was due before the start of now's day.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate.Before(StartOfDay(now))
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Window returns the due-date range [from, to) of the section. A nil from
// means the range is open below.
func (s DashboardSection) Window(now time.Time, daysAhead int) (*time.Time, time.Time) {
	today := StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	horizon := today.AddDate(0, 0, daysAhead)

	switch s {
	case SectionOverdue:
		return nil, today
	case SectionToday:
		return &today, tomorrow
	case SectionUpcoming:
		return &tomorrow, horizon
	default:
		return nil, horizon
	}
}
