package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/ports"
)

const (
	spaceTypesCacheKey    = "catalog:space_types"
	templatesCacheKeyBase = "catalog:templates:"
	catalogCachePattern   = "catalog:*"
)

// CatalogService serves the read-only space type and template catalog.
// Listings are cached when a cache is configured; cache is optional.
type CatalogService struct {
	catalogRepo ports.CatalogRepository
	cache       ports.CacheRepository
	ttl         time.Duration
	logger      *logger.Logger
}

func NewCatalogService(catalogRepo ports.CatalogRepository, cache ports.CacheRepository, ttl time.Duration, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
		ttl:         ttl,
		logger:      logger.WithComponent("catalog"),
	}
}

func (s *CatalogService) ListSpaceTypes(ctx context.Context) ([]*entities.SpaceType, error) {
	var cached []*entities.SpaceType
	if s.fromCache(ctx, spaceTypesCacheKey, &cached) {
		return cached, nil
	}

	spaceTypes, err := s.catalogRepo.ListSpaceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list space types: %w", err)
	}

	s.toCache(ctx, spaceTypesCacheKey, spaceTypes)
	return spaceTypes, nil
}

// ListTemplates lists templates for one space type, or all of them when spaceType is empty
func (s *CatalogService) ListTemplates(ctx context.Context, spaceType string) ([]*entities.TaskTemplate, error) {
	key := templatesCacheKeyBase + "all"
	if spaceType != "" {
		key = templatesCacheKeyBase + spaceType
	}

	var cached []*entities.TaskTemplate
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	templates, err := s.catalogRepo.ListTemplates(ctx, spaceType)
	if err != nil {
		return nil, fmt.Errorf("failed to list task templates: %w", err)
	}

	s.toCache(ctx, key, templates)
	return templates, nil
}

// Import upserts every space type and then every template of the import,
// so templates may refer to space types introduced by the same file.
func (s *CatalogService) Import(ctx context.Context, in *ports.CatalogImport) error {
	for i := range in.SpaceTypes {
		if err := s.catalogRepo.UpsertSpaceType(ctx, &in.SpaceTypes[i]); err != nil {
			return err
		}
	}
	for i := range in.Templates {
		if err := s.catalogRepo.UpsertTemplate(ctx, &in.Templates[i]); err != nil {
			return err
		}
	}

	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, catalogCachePattern); err != nil {
			s.logger.Warnw("Failed to invalidate catalog cache", "error", err)
		}
	}

	s.logger.Infow("Catalog imported",
		"space_types", len(in.SpaceTypes),
		"templates", len(in.Templates),
	)
	return nil
}

func (s *CatalogService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err != nil && !errors.Is(err, ports.ErrCacheMiss) {
		s.logger.Warnw("Catalog cache read failed", "key", key, "error", err)
	}
	return err == nil
}

func (s *CatalogService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warnw("Catalog cache write failed", "key", key, "error", err)
	}
}
