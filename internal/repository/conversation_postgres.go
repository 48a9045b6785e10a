package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futig/legal-assistant/internal/entity"
)

// ConversationRepository defines the interface for conversation persistence
type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, error)
	Get(ctx context.Context, id string) (*entity.Conversation, error)
	GetByExternalRef(ctx context.Context, ref string) (*entity.Conversation, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Conversation, error)
	Delete(ctx context.Context, id string) error
	ClearExternalRef(ctx context.Context, ref string) error
}

var _ ConversationRepository = &ConversationPostgres{}

// ConversationPostgres implements ConversationRepository using PostgreSQL
type ConversationPostgres struct {
	db *pgxpool.Pool
}

func NewConversationPostgres(db *pgxpool.Pool) *ConversationPostgres {
	return &ConversationPostgres{
		db: db,
	}
}

func (r *ConversationPostgres) Create(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, error) {
	id, err := parseID(conv.ID)
	if err != nil {
		return nil, err
	}

	state, err := encodeState(conv.State)
	if err != nil {
		return nil, err
	}

	created, err := scanConversation(r.db.QueryRow(ctx, createConversation, id, toText(conv.ExternalRef), state))
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	return created, nil
}

func (r *ConversationPostgres) Get(ctx context.Context, id string) (*entity.Conversation, error) {
	convID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	conv, err := scanConversation(r.db.QueryRow(ctx, getConversation, convID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return conv, nil
}

func (r *ConversationPostgres) GetByExternalRef(ctx context.Context, ref string) (*entity.Conversation, error) {
	conv, err := scanConversation(r.db.QueryRow(ctx, getConversationByExternalRef, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation by external ref: %w", err)
	}

	return conv, nil
}

func (r *ConversationPostgres) List(ctx context.Context, skip, limit int) ([]*entity.Conversation, error) {
	rows, err := r.db.Query(ctx, listConversations, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]*entity.Conversation, 0, limit)
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, nil
}

func (r *ConversationPostgres) Delete(ctx context.Context, id string) error {
	convID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, deleteConversation, convID)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrConversationNotFound
	}

	return nil
}

// ClearExternalRef detaches the conversation bound to ref. History is kept.
func (r *ConversationPostgres) ClearExternalRef(ctx context.Context, ref string) error {
	if _, err := r.db.Exec(ctx, clearExternalRef, ref); err != nil {
		return fmt.Errorf("clear external ref: %w", err)
	}

	return nil
}
