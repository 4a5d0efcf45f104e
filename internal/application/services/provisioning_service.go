package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/infrastructure/metrics"
	"github.com/housekeep/core/internal/ports"
)

// ProvisioningService creates tasks in bulk from catalog templates. Every
// item succeeds or fails on its own; results keep the input order.
type ProvisioningService struct {
	taskRepo    ports.TaskRepository
	spaceRepo   ports.SpaceRepository
	catalogRepo ports.CatalogRepository
	clock       ports.Clock
	concurrency int
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewProvisioningService(taskRepo ports.TaskRepository, spaceRepo ports.SpaceRepository, catalogRepo ports.CatalogRepository, clock ports.Clock, concurrency int, m *metrics.Metrics, logger *logger.Logger) *ProvisioningService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProvisioningService{
		taskRepo:    taskRepo,
		spaceRepo:   spaceRepo,
		catalogRepo: catalogRepo,
		clock:       clock,
		concurrency: concurrency,
		metrics:     m,
		logger:      logger.WithComponent("provisioning"),
	}
}

// ProvisionFromTemplates creates one task per item in the given space. A
// missing space fails the whole call with entities.ErrSpaceNotFound;
// anything else is reported per item.
func (s *ProvisioningService) ProvisionFromTemplates(ctx context.Context, userID, spaceID uuid.UUID, items []ports.ProvisionItem) ([]ports.ItemResult, error) {
	space, err := s.spaceRepo.GetByID(ctx, spaceID, userID)
	if err != nil {
		return nil, fmt.Errorf("verify space: %w", err)
	}

	now := s.clock.Now()
	results := make([]ports.ItemResult, len(items))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = s.provisionItem(ctx, space, item, now)
			return nil
		})
	}
	_ = g.Wait()

	created := 0
	for _, r := range results {
		if _, ok := r.(ports.CreatedItem); ok {
			created++
		}
	}
	s.logger.LogSpaceEvent("space.provisioned", userID, space.ID,
		"requested", len(items),
		"created", created,
	)

	return results, nil
}

func (s *ProvisioningService) provisionItem(ctx context.Context, space *entities.Space, item ports.ProvisionItem, now time.Time) ports.ItemResult {
	template, err := s.catalogRepo.GetTemplate(ctx, item.TemplateID)
	if err != nil {
		if errors.Is(err, entities.ErrTemplateNotFound) {
			s.metrics.ProvisionedItem(http.StatusNotFound)
			return ports.TemplateNotFoundItem{Template: item.TemplateID}
		}
		return s.internalError(item.TemplateID, err)
	}

	value := template.DefaultRecurrenceValue
	if item.OverrideRecurrenceValue != nil {
		value = *item.OverrideRecurrenceValue
	}
	unit := template.DefaultRecurrenceUnit
	if item.OverrideRecurrenceUnit != nil {
		unit = *item.OverrideRecurrenceUnit
	}

	task, err := entities.NewTask(space, template.TaskName, value, unit, now)
	if err != nil {
		return s.internalError(item.TemplateID, err)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, entities.ErrDuplicateTaskName) {
			s.metrics.ProvisionedItem(http.StatusConflict)
			return ports.DuplicateTaskNameItem{Template: item.TemplateID, TaskName: template.TaskName}
		}
		return s.internalError(item.TemplateID, err)
	}

	s.metrics.ProvisionedItem(http.StatusCreated)
	return ports.CreatedItem{
		Template: item.TemplateID,
		Task:     &entities.TaskWithSpace{Task: *task, Space: space.Summary()},
	}
}

func (s *ProvisioningService) internalError(templateID uuid.UUID, err error) ports.ItemResult {
	s.logger.Errorw("Provisioning item failed", "template_id", templateID, "error", err)
	s.metrics.ProvisionedItem(http.StatusInternalServerError)
	return ports.InternalErrorItem{Template: templateID, Err: err}
}
