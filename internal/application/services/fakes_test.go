package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/ports"
)

type mockTaskRepo struct {
	CreateFunc         func(ctx context.Context, task *entities.Task) error
	GetByIDFunc        func(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error)
	GetWithSpaceFunc   func(ctx context.Context, id, userID uuid.UUID) (*entities.TaskWithSpace, error)
	UpdateScheduleFunc func(ctx context.Context, task *entities.Task) error
	DeleteFunc         func(ctx context.Context, id, userID uuid.UUID) error
	ListFunc           func(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, entities.ErrTaskNotFound
}

func (m *mockTaskRepo) GetWithSpace(ctx context.Context, id, userID uuid.UUID) (*entities.TaskWithSpace, error) {
	if m.GetWithSpaceFunc != nil {
		return m.GetWithSpaceFunc(ctx, id, userID)
	}
	return nil, entities.ErrTaskNotFound
}

func (m *mockTaskRepo) UpdateSchedule(ctx context.Context, task *entities.Task) error {
	if m.UpdateScheduleFunc != nil {
		return m.UpdateScheduleFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.TaskWithSpace, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockSpaceRepo struct {
	CreateFunc  func(ctx context.Context, space *entities.Space) error
	GetByIDFunc func(ctx context.Context, id, userID uuid.UUID) (*entities.Space, error)
	UpdateFunc  func(ctx context.Context, space *entities.Space) error
	DeleteFunc  func(ctx context.Context, id, userID uuid.UUID) error
	ListFunc    func(ctx context.Context, filter ports.SpaceFilter) ([]*entities.Space, int, error)
}

func (m *mockSpaceRepo) Create(ctx context.Context, space *entities.Space) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, space)
	}
	return nil
}

func (m *mockSpaceRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Space, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, entities.ErrSpaceNotFound
}

func (m *mockSpaceRepo) Update(ctx context.Context, space *entities.Space) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, space)
	}
	return nil
}

func (m *mockSpaceRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockSpaceRepo) List(ctx context.Context, filter ports.SpaceFilter) ([]*entities.Space, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockCatalogRepo struct {
	ListSpaceTypesFunc  func(ctx context.Context) ([]*entities.SpaceType, error)
	SpaceTypeExistsFunc func(ctx context.Context, code string) (bool, error)
	ListTemplatesFunc   func(ctx context.Context, spaceType string) ([]*entities.TaskTemplate, error)
	GetTemplateFunc     func(ctx context.Context, id uuid.UUID) (*entities.TaskTemplate, error)
	UpsertSpaceTypeFunc func(ctx context.Context, spaceType *entities.SpaceType) error
	UpsertTemplateFunc  func(ctx context.Context, template *entities.TaskTemplate) error
}

func (m *mockCatalogRepo) ListSpaceTypes(ctx context.Context) ([]*entities.SpaceType, error) {
	if m.ListSpaceTypesFunc != nil {
		return m.ListSpaceTypesFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepo) SpaceTypeExists(ctx context.Context, code string) (bool, error) {
	if m.SpaceTypeExistsFunc != nil {
		return m.SpaceTypeExistsFunc(ctx, code)
	}
	return false, nil
}

func (m *mockCatalogRepo) ListTemplates(ctx context.Context, spaceType string) ([]*entities.TaskTemplate, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx, spaceType)
	}
	return nil, nil
}

func (m *mockCatalogRepo) GetTemplate(ctx context.Context, id uuid.UUID) (*entities.TaskTemplate, error) {
	if m.GetTemplateFunc != nil {
		return m.GetTemplateFunc(ctx, id)
	}
	return nil, entities.ErrTemplateNotFound
}

func (m *mockCatalogRepo) UpsertSpaceType(ctx context.Context, spaceType *entities.SpaceType) error {
	if m.UpsertSpaceTypeFunc != nil {
		return m.UpsertSpaceTypeFunc(ctx, spaceType)
	}
	return nil
}

func (m *mockCatalogRepo) UpsertTemplate(ctx context.Context, template *entities.TaskTemplate) error {
	if m.UpsertTemplateFunc != nil {
		return m.UpsertTemplateFunc(ctx, template)
	}
	return nil
}

type mockMessageRepo struct {
	CreateFunc func(ctx context.Context, message *entities.MotivationalMessage) error
	LatestFunc func(ctx context.Context, taskID uuid.UUID) (*entities.MotivationalMessage, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, message *entities.MotivationalMessage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepo) Latest(ctx context.Context, taskID uuid.UUID) (*entities.MotivationalMessage, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, taskID)
	}
	return nil, entities.ErrMessageNotFound
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt ports.MessagePrompt) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt ports.MessagePrompt) (string, error) {
	return m.GenerateFunc(ctx, prompt)
}

// memoryCache is an in-process CacheRepository that ignores expirations
type memoryCache struct {
	mu       sync.Mutex
	values   map[string]interface{}
	counters map[string]int64
	deleted  []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]interface{}{}, counters: map[string]int64{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// Get only supports destinations of the same type as the stored value
func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return ports.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]*entities.SpaceType:
		*d = v.([]*entities.SpaceType)
	case *[]*entities.TaskTemplate:
		*d = v.([]*entities.TaskTemplate)
	case *entities.MotivationalMessage:
		*d = *v.(*entities.MotivationalMessage)
	}
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	c.values = map[string]interface{}{}
	return nil
}

func (c *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

func (c *memoryCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
