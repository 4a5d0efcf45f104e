package ports

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/domain/recurrence"
)

// Request DTOs

type CreateSpaceRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	SpaceType *string `json:"space_type" validate:"omitempty,max=50"`
	Icon      *string `json:"icon" validate:"omitempty,max=50"`
}

type UpdateSpaceRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon" validate:"omitempty,max=50"`
}

type CreateTaskRequest struct {
	SpaceID         uuid.UUID       `json:"space_id" validate:"required"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	RecurrenceValue int             `json:"recurrence_value" validate:"required,gt=0"`
	RecurrenceUnit  recurrence.Unit `json:"recurrence_unit" validate:"required,oneof=days months"`
}

type CompleteTaskRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
}

type EditRecurrenceRequest struct {
	RecurrenceValue int             `json:"recurrence_value" validate:"required,gt=0"`
	RecurrenceUnit  recurrence.Unit `json:"recurrence_unit" validate:"required,oneof=days months"`
}

// ProvisionItem asks for one task built from a template. Each override
// replaces the template default independently.
type ProvisionItem struct {
	TemplateID              uuid.UUID        `json:"template_id" validate:"required"`
	OverrideRecurrenceValue *int             `json:"override_recurrence_value" validate:"omitempty,gt=0"`
	OverrideRecurrenceUnit  *recurrence.Unit `json:"override_recurrence_unit" validate:"omitempty,oneof=days months"`
}

type BulkProvisionRequest struct {
	Items []ProvisionItem `json:"items" validate:"required,min=1,max=50,dive"`
}

type GenerateMessageRequest struct {
	TaskName  string        `json:"task_name" validate:"required,min=1,max=200"`
	Tone      entities.Tone `json:"tone" validate:"required,oneof=encouraging playful neutral"`
	MaxLength int           `json:"max_length" validate:"omitempty,min=10,max=150"`
}

// MessagePrompt is what a TextGenerator is asked to write about
type MessagePrompt struct {
	TaskName  string
	Tone      entities.Tone
	MaxLength int
}

// Queries

type SpaceListQuery struct {
	Search string
	Page   int
	Limit  int
	Sort   string
}

type TaskListQuery struct {
	SpaceID   *uuid.UUID
	Status    *entities.TaskStatus
	DueBefore *time.Time
	DueAfter  *time.Time
	Page      int
	Limit     int
	Sort      string
}

type DashboardQuery struct {
	Section   entities.DashboardSection
	DaysAhead int
	Page      int
	Limit     int
	Sort      string
}

// ParseSort splits "field.order" into its parts. Anything malformed yields
// the fallback field in ascending order.
func ParseSort(sort, fallbackField, fallbackOrder string) (string, string) {
	field, order, ok := strings.Cut(sort, ".")
	if !ok || field == "" {
		return fallbackField, fallbackOrder
	}
	if order != "asc" && order != "desc" {
		order = fallbackOrder
	}
	return field, order
}

// Responses

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes total_pages, which is at least 1 even for an empty result.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 1
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// OutOfRange reports whether the requested page lies past the last page of a non-empty result.
func (p Pagination) OutOfRange() bool {
	return p.Total > 0 && p.Page > p.TotalPages
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type TaskPage = Page[*entities.TaskWithSpace]

type SpacePage = Page[*entities.Space]

// SectionResult is one dashboard section of an overview; exactly one of Page and Err is set.
type SectionResult struct {
	Section entities.DashboardSection
	Page    *TaskPage
	Err     error
}

type DashboardOverview struct {
	GeneratedAt time.Time
	Sections    []SectionResult
}

// CatalogImport is an operator-supplied set of space types and templates
type CatalogImport struct {
	SpaceTypes []entities.SpaceType    `yaml:"space_types"`
	Templates  []entities.TaskTemplate `yaml:"task_templates"`
}

// ItemResult is the outcome of provisioning a single item. The concrete
// types are CreatedItem, TemplateNotFoundItem, DuplicateTaskNameItem and
// InternalErrorItem.
type ItemResult interface {
	TemplateID() uuid.UUID
	itemResult()
}

type CreatedItem struct {
	Template uuid.UUID
	Task     *entities.TaskWithSpace
}

type TemplateNotFoundItem struct {
	Template uuid.UUID
}

type DuplicateTaskNameItem struct {
	Template uuid.UUID
	TaskName string
}

type InternalErrorItem struct {
	Template uuid.UUID
	Err      error
}

func (r CreatedItem) TemplateID() uuid.UUID           { return r.Template }
func (r TemplateNotFoundItem) TemplateID() uuid.UUID  { return r.Template }
func (r DuplicateTaskNameItem) TemplateID() uuid.UUID { return r.Template }
func (r InternalErrorItem) TemplateID() uuid.UUID     { return r.Template }

func (CreatedItem) itemResult()           {}
func (TemplateNotFoundItem) itemResult()  {}
func (DuplicateTaskNameItem) itemResult() {}
func (InternalErrorItem) itemResult()     {}
