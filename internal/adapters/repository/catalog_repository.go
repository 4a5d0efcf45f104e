package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/housekeep/core/internal/domain/entities"
	"github.com/housekeep/core/internal/ports"
)

// CatalogRepositoryImpl reads space types and task templates
type CatalogRepositoryImpl struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sqlx.DB) ports.CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

func (r *CatalogRepositoryImpl) ListSpaceTypes(ctx context.Context) ([]*entities.SpaceType, error) {
	query := `
		SELECT id, code, display_name, icon, display_order
		FROM space_types
		ORDER BY display_order ASC, code ASC`

	spaceTypes := []*entities.SpaceType{}
	if err := r.db.SelectContext(ctx, &spaceTypes, query); err != nil {
		return nil, fmt.Errorf("list space types: %w", err)
	}

	return spaceTypes, nil
}

func (r *CatalogRepositoryImpl) SpaceTypeExists(ctx context.Context, code string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM space_types WHERE code = ?`)

	var count int
	if err := r.db.GetContext(ctx, &count, query, code); err != nil {
		return false, fmt.Errorf("check space type: %w", err)
	}

	return count > 0, nil
}

// ListTemplates returns templates ordered by space type and display order.
// An empty spaceType lists every template.
func (r *CatalogRepositoryImpl) ListTemplates(ctx context.Context, spaceType string) ([]*entities.TaskTemplate, error) {
	query := `
		SELECT id, space_type, task_name, default_recurrence_value, default_recurrence_unit, display_order
		FROM task_templates`
	var args []interface{}

	if spaceType != "" {
		query += ` WHERE space_type = ?`
		args = append(args, spaceType)
	}
	query += ` ORDER BY space_type ASC, display_order ASC`

	templates := []*entities.TaskTemplate{}
	if err := r.db.SelectContext(ctx, &templates, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list task templates: %w", err)
	}

	return templates, nil
}

func (r *CatalogRepositoryImpl) GetTemplate(ctx context.Context, id uuid.UUID) (*entities.TaskTemplate, error) {
	query := r.db.Rebind(`
		SELECT id, space_type, task_name, default_recurrence_value, default_recurrence_unit, display_order
		FROM task_templates
		WHERE id = ?`)

	var template entities.TaskTemplate
	err := r.db.GetContext(ctx, &template, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("get task template: %w", err)
	}

	return &template, nil
}

func (r *CatalogRepositoryImpl) UpsertSpaceType(ctx context.Context, spaceType *entities.SpaceType) error {
	query := `
		INSERT INTO space_types (code, display_name, icon, display_order)
		VALUES (:code, :display_name, :icon, :display_order)
		ON CONFLICT (code) DO UPDATE SET
			display_name = excluded.display_name,
			icon = excluded.icon,
			display_order = excluded.display_order`

	if _, err := r.db.NamedExecContext(ctx, query, spaceType); err != nil {
		return fmt.Errorf("upsert space type %s: %w", spaceType.Code, err)
	}

	return nil
}

// UpsertTemplate matches existing templates by space type and task name,
// keeping their ids stable across imports.
func (r *CatalogRepositoryImpl) UpsertTemplate(ctx context.Context, template *entities.TaskTemplate) error {
	query := `
		INSERT INTO task_templates (id, space_type, task_name, default_recurrence_value, default_recurrence_unit, display_order)
		VALUES (:id, :space_type, :task_name, :default_recurrence_value, :default_recurrence_unit, :display_order)
		ON CONFLICT (space_type, task_name) DO UPDATE SET
			default_recurrence_value = excluded.default_recurrence_value,
			default_recurrence_unit = excluded.default_recurrence_unit,
			display_order = excluded.display_order`

	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}

	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return fmt.Errorf("upsert task template %s/%s: %w", template.SpaceType, template.TaskName, err)
	}

	return nil
}
