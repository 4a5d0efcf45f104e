package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// SpaceRepository defines the interface for space data operations.
// Every lookup is scoped to the owner.
type SpaceRepository interface {
	Create(ctx context.Context, space *entities.Space) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Space, error)
	Update(ctx context.Context, space *entities.Space) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, filter SpaceFilter) ([]*entities.Space, int, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error)
	GetWithSpace(ctx context.Context, id, userID uuid.UUID) (*entities.TaskWithSpace, error)
	// UpdateSchedule persists the lifecycle fields of task only if the stored
	// version still equals task.Version. It returns entities.ErrTaskNotFound
	// when the row is gone and entities.ErrTaskVersionConflict when another
	// writer got there first. On success task.Version is advanced.
	UpdateSchedule(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.TaskWithSpace, int, error)
}

// CatalogRepository reads the system-seeded space types and task templates
type CatalogRepository interface {
	ListSpaceTypes(ctx context.Context) ([]*entities.SpaceType, error)
	SpaceTypeExists(ctx context.Context, code string) (bool, error)
	ListTemplates(ctx context.Context, spaceType string) ([]*entities.TaskTemplate, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*entities.TaskTemplate, error)
	UpsertSpaceType(ctx context.Context, spaceType *entities.SpaceType) error
	UpsertTemplate(ctx context.Context, template *entities.TaskTemplate) error
}

// MessageRepository stores motivational messages
type MessageRepository interface {
	Create(ctx context.Context, message *entities.MotivationalMessage) error
	Latest(ctx context.Context, taskID uuid.UUID) (*entities.MotivationalMessage, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// TextGenerator turns a prompt into a short piece of text
type TextGenerator interface {
	Generate(ctx context.Context, prompt MessagePrompt) (string, error)
}

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// Filter types

type SpaceFilter struct {
	UserID    uuid.UUID
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// TaskFilter selects a user's tasks. DueBefore and DueAfter are exclusive
// bounds, DueFrom is inclusive.
type TaskFilter struct {
	UserID    uuid.UUID
	SpaceID   *uuid.UUID
	Status    *entities.TaskStatus
	DueBefore *time.Time
	DueAfter  *time.Time
	DueFrom   *time.Time
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}
