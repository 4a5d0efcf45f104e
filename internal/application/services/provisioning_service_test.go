package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/domain/recurrence"
	"github.com/housekeep/core/internal/infrastructure/clock"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

func TestProvisioningService_ProvisionFromTemplates(t *testing.T) {
	wipe := &entities.TaskTemplate{ID: uuid.New(), SpaceType: "kitchen", TaskName: "Wipe counters", DefaultRecurrenceValue: 1, DefaultRecurrenceUnit: recurrence.Days}
	fridge := &entities.TaskTemplate{ID: uuid.New(), SpaceType: "kitchen", TaskName: "Clean the fridge", DefaultRecurrenceValue: 1, DefaultRecurrenceUnit: recurrence.Months}
	broken := &entities.TaskTemplate{ID: uuid.New(), SpaceType: "kitchen", TaskName: "Descale the kettle", DefaultRecurrenceValue: 1, DefaultRecurrenceUnit: recurrence.Months}
	missing := uuid.New()

	templates := map[uuid.UUID]*entities.TaskTemplate{wipe.ID: wipe, fridge.ID: fridge, broken.ID: broken}
	space := &entities.Space{ID: testSpace, UserID: testUser, Name: "Kitchen"}
	three := 3

	for _, concurrency := range []int{1, 4} {
		t.Run(fmt.Sprintf("Given mixed items at concurrency %d When provisioning Then results keep input order", concurrency), func(t *testing.T) {
			var mu sync.Mutex
			created := map[string]*entities.Task{}

			catalog := &mockCatalogRepo{
				GetTemplateFunc: func(ctx context.Context, id uuid.UUID) (*entities.TaskTemplate, error) {
					if tpl, ok := templates[id]; ok {
						return tpl, nil
					}
					return nil, entities.ErrTemplateNotFound
				},
			}
			tasks := &mockTaskRepo{
				CreateFunc: func(ctx context.Context, task *entities.Task) error {
					mu.Lock()
					defer mu.Unlock()
					switch {
					case task.Name == broken.TaskName:
						return errors.New("disk full")
					case created[task.Name] != nil:
						return entities.ErrDuplicateTaskName
					}
					created[task.Name] = task
					return nil
				},
			}
			spaces := &mockSpaceRepo{
				GetByIDFunc: func(ctx context.Context, id, userID uuid.UUID) (*entities.Space, error) { return space, nil },
			}

			svc := NewProvisioningService(tasks, spaces, catalog, clock.NewFixed(testNow), concurrency, nil, logger.NewNop())

			items := []ports.ProvisionItem{
				{TemplateID: wipe.ID, OverrideRecurrenceValue: &three},
				{TemplateID: missing},
				{TemplateID: fridge.ID},
				{TemplateID: broken.ID},
			}

			results, err := svc.ProvisionFromTemplates(context.Background(), testUser, testSpace, items)
			if err != nil {
				t.Fatalf("ProvisionFromTemplates() error = %v", err)
			}
			if len(results) != len(items) {
				t.Fatalf("got %d results, want %d", len(results), len(items))
			}
			for i, r := range results {
				if r.TemplateID() != items[i].TemplateID {
					t.Errorf("result %d template = %s, want %s", i, r.TemplateID(), items[i].TemplateID)
				}
			}

			first, ok := results[0].(ports.CreatedItem)
			if !ok {
				t.Fatalf("result 0 = %T, want CreatedItem", results[0])
			}
			if first.Task.RecurrenceValue != 3 || first.Task.RecurrenceUnit != recurrence.Days {
				t.Errorf("override not applied: %d %s", first.Task.RecurrenceValue, first.Task.RecurrenceUnit)
			}
			if want := testNow.AddDate(0, 0, 3); !first.Task.DueDate.Equal(want) {
				t.Errorf("DueDate = %v, want %v", first.Task.DueDate, want)
			}
			if first.Task.Status != entities.TaskStatusPending || first.Task.PostponementCount != 0 {
				t.Errorf("new task state = %s/%d", first.Task.Status, first.Task.PostponementCount)
			}

			if _, ok := results[1].(ports.TemplateNotFoundItem); !ok {
				t.Errorf("result 1 = %T, want TemplateNotFoundItem", results[1])
			}
			if _, ok := results[2].(ports.CreatedItem); !ok {
				t.Errorf("result 2 = %T, want CreatedItem", results[2])
			}
			if _, ok := results[3].(ports.InternalErrorItem); !ok {
				t.Errorf("result 3 = %T, want InternalErrorItem", results[3])
			}

			again, err := svc.ProvisionFromTemplates(context.Background(), testUser, testSpace, items[:1])
			if err != nil {
				t.Fatalf("second call error = %v", err)
			}
			dup, ok := again[0].(ports.DuplicateTaskNameItem)
			if !ok || dup.TaskName != wipe.TaskName {
				t.Errorf("second call result = %#v, want DuplicateTaskNameItem", again[0])
			}
		})
	}
}

func TestProvisioningService_UnknownSpace(t *testing.T) {
	svc := NewProvisioningService(&mockTaskRepo{}, &mockSpaceRepo{}, &mockCatalogRepo{}, clock.NewFixed(testNow), 1, nil, logger.NewNop())

	_, err := svc.ProvisionFromTemplates(context.Background(), testUser, testSpace, []ports.ProvisionItem{{TemplateID: uuid.New()}})
	if !errors.Is(err, entities.ErrSpaceNotFound) {
		t.Fatalf("error = %v, want ErrSpaceNotFound", err)
	}
}
