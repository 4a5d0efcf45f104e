package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

// SpaceService handles the user's spaces
type SpaceService struct {
	spaceRepo   ports.SpaceRepository
	catalogRepo ports.CatalogRepository
	clock       ports.Clock
	logger      *logger.Logger
}

// NewSpaceService creates a new space service
func NewSpaceService(spaceRepo ports.SpaceRepository, catalogRepo ports.CatalogRepository, clock ports.Clock, logger *logger.Logger) *SpaceService {
	return &SpaceService{
		spaceRepo:   spaceRepo,
		catalogRepo: catalogRepo,
		clock:       clock,
		logger:      logger.WithComponent("spaces"),
	}
}

// CreateSpace creates a new space. A space type, when given, must exist in the catalog.
func (s *SpaceService) CreateSpace(ctx context.Context, userID uuid.UUID, req ports.CreateSpaceRequest) (*entities.Space, error) {
	if req.SpaceType != nil {
		exists, err := s.catalogRepo.SpaceTypeExists(ctx, *req.SpaceType)
		if err != nil {
			return nil, fmt.Errorf("check space type: %w", err)
		}
		if !exists {
			return nil, entities.ErrSpaceTypeNotFound
		}
	}

	now := s.clock.Now()
	space := &entities.Space{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		SpaceType: req.SpaceType,
		Icon:      req.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.spaceRepo.Create(ctx, space); err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}

	s.logger.LogSpaceEvent("space.created", userID, space.ID, "space_type", space.SpaceType)

	return space, nil
}

func (s *SpaceService) GetSpace(ctx context.Context, userID, id uuid.UUID) (*entities.Space, error) {
	space, err := s.spaceRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}
	return space, nil
}

// UpdateSpace renames the space or changes its icon. The space type is fixed at creation.
func (s *SpaceService) UpdateSpace(ctx context.Context, userID, id uuid.UUID, req ports.UpdateSpaceRequest) (*entities.Space, error) {
	space, err := s.spaceRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get space: %w", err)
	}

	if req.Name != nil {
		space.Name = strings.TrimSpace(*req.Name)
	}
	if req.Icon != nil {
		space.Icon = req.Icon
	}
	space.UpdatedAt = s.clock.Now()

	if err := s.spaceRepo.Update(ctx, space); err != nil {
		return nil, fmt.Errorf("failed to update space: %w", err)
	}

	s.logger.LogSpaceEvent("space.updated", userID, space.ID)

	return space, nil
}

// DeleteSpace removes the space along with all of its tasks
func (s *SpaceService) DeleteSpace(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.spaceRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}

	s.logger.LogSpaceEvent("space.deleted", userID, id)
	return nil
}

// ListSpaces pages through the user's spaces, newest first unless q.Sort says otherwise
func (s *SpaceService) ListSpaces(ctx context.Context, userID uuid.UUID, q ports.SpaceListQuery) (*ports.SpacePage, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	sortBy, sortOrder := ports.ParseSort(q.Sort, "created_at", "desc")

	spaces, total, err := s.spaceRepo.List(ctx, ports.SpaceFilter{
		UserID:    userID,
		Search:    strings.TrimSpace(q.Search),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    ports.Offset(page, limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	pagination := ports.NewPagination(page, limit, total)
	if pagination.OutOfRange() {
		return nil, fmt.Errorf("page %d of %d: %w", page, pagination.TotalPages, entities.ErrPageOutOfRange)
	}

	return &ports.SpacePage{Data: spaces, Pagination: pagination}, nil
}
