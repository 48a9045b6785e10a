package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futig/legal-assistant/internal/entity"
)

// MessageRepository defines the interface for conversation history persistence
type MessageRepository interface {
	List(ctx context.Context, conversationID string) ([]entity.Message, error)
	ListRecent(ctx context.Context, conversationID string, limit int) ([]entity.Message, error)
}

var _ MessageRepository = &MessagePostgres{}

// MessagePostgres implements MessageRepository using PostgreSQL
type MessagePostgres struct {
	db *pgxpool.Pool
}

func NewMessagePostgres(db *pgxpool.Pool) *MessagePostgres {
	return &MessagePostgres{
		db: db,
	}
}

func (r *MessagePostgres) List(ctx context.Context, conversationID string) ([]entity.Message, error) {
	convID, err := parseID(conversationID)
	if err != nil {
		return nil, err
	}

	return r.query(ctx, listMessages, convID)
}

// ListRecent returns at most limit of the newest messages in chronological order.
func (r *MessagePostgres) ListRecent(ctx context.Context, conversationID string, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		return r.List(ctx, conversationID)
	}

	convID, err := parseID(conversationID)
	if err != nil {
		return nil, err
	}

	return r.query(ctx, listRecentMessages, convID, limit)
}

func (r *MessagePostgres) query(ctx context.Context, sql string, args ...any) ([]entity.Message, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]entity.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}
