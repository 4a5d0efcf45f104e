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

// SpaceRepositoryImpl implements the SpaceRepository interface
type SpaceRepositoryImpl struct {
	db *sqlx.DB
}

// NewSpaceRepository creates a new space repository
func NewSpaceRepository(db *sqlx.DB) ports.SpaceRepository {
	return &SpaceRepositoryImpl{db: db}
}

var spaceSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

func (r *SpaceRepositoryImpl) Create(ctx context.Context, space *entities.Space) error {
	query := `
		INSERT INTO spaces (id, user_id, name, space_type, icon, created_at, updated_at)
		VALUES (:id, :user_id, :name, :space_type, :icon, :created_at, :updated_at)`

	if space.ID == uuid.Nil {
		space.ID = uuid.New()
	}
	space.CreatedAt = dbTime(space.CreatedAt)
	space.UpdatedAt = dbTime(space.UpdatedAt)

	if _, err := r.db.NamedExecContext(ctx, query, space); err != nil {
		if isUniqueViolation(err) {
			return entities.ErrDuplicateSpaceName
		}
		return fmt.Errorf("create space: %w", err)
	}

	return nil
}

func (r *SpaceRepositoryImpl) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Space, error) {
	query := r.db.Rebind(`
		SELECT id, user_id, name, space_type, icon, created_at, updated_at
		FROM spaces
		WHERE id = ? AND user_id = ?`)

	var space entities.Space
	err := r.db.GetContext(ctx, &space, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrSpaceNotFound
		}
		return nil, fmt.Errorf("get space by id: %w", err)
	}

	return &space, nil
}

func (r *SpaceRepositoryImpl) Update(ctx context.Context, space *entities.Space) error {
	query := r.db.Rebind(`
		UPDATE spaces
		SET name = ?, icon = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)

	space.UpdatedAt = dbTime(space.UpdatedAt)

	result, err := r.db.ExecContext(ctx, query, space.Name, space.Icon, space.UpdatedAt, space.ID, space.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrDuplicateSpaceName
		}
		return fmt.Errorf("update space: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrSpaceNotFound
	}

	return nil
}

// Delete removes the space; its tasks go with it through the foreign key cascade.
func (r *SpaceRepositoryImpl) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM spaces WHERE id = ? AND user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrSpaceNotFound
	}

	return nil
}

func (r *SpaceRepositoryImpl) List(ctx context.Context, filter ports.SpaceFilter) ([]*entities.Space, int, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}

	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM spaces WHERE " + whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count spaces: %w", err)
	}

	column, ok := spaceSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}

	query := r.db.Rebind(fmt.Sprintf(`
		SELECT id, user_id, name, space_type, icon, created_at, updated_at
		FROM spaces
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT ? OFFSET ?`, whereClause, column, sortDirection(filter.SortOrder)))

	spaces := []*entities.Space{}
	if err := r.db.SelectContext(ctx, &spaces, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("list spaces: %w", err)
	}

	return spaces, total, nil
}
