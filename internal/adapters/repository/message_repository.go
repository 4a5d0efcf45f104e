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

// MessageRepositoryImpl stores motivational messages
type MessageRepositoryImpl struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) ports.MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entities.MotivationalMessage) error {
	query := `
		INSERT INTO motivational_messages (id, task_id, message_text, generated_at)
		VALUES (:id, :task_id, :message_text, :generated_at)`

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.GeneratedAt = dbTime(message.GeneratedAt)

	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("create motivational message: %w", err)
	}

	return nil
}

func (r *MessageRepositoryImpl) Latest(ctx context.Context, taskID uuid.UUID) (*entities.MotivationalMessage, error) {
	query := r.db.Rebind(`
		SELECT id, task_id, message_text, generated_at
		FROM motivational_messages
		WHERE task_id = ?
		ORDER BY generated_at DESC, id DESC
		LIMIT 1`)

	var message entities.MotivationalMessage
	err := r.db.GetContext(ctx, &message, query, taskID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get latest motivational message: %w", err)
	}

	return &message, nil
}
