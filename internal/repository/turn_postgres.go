package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futig/legal-assistant/internal/entity"
)

// TurnRepository persists the outcome of a dialogue turn
type TurnRepository interface {
	SaveTurn(ctx context.Context, turn *entity.TurnRecord) error
}

var _ TurnRepository = &TurnPostgres{}

// TurnPostgres writes messages, state and document of a turn in one transaction
type TurnPostgres struct {
	db *pgxpool.Pool
}

func NewTurnPostgres(db *pgxpool.Pool) *TurnPostgres {
	return &TurnPostgres{
		db: db,
	}
}

func (r *TurnPostgres) SaveTurn(ctx context.Context, turn *entity.TurnRecord) error {
	convID, err := parseID(turn.ConversationID)
	if err != nil {
		return err
	}

	state, err := encodeState(turn.State)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin turn transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := saveTurn(ctx, tx, convID, state, turn); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit turn: %w", err)
	}

	return nil
}

func saveTurn(ctx context.Context, db dbtx, convID any, state []byte, turn *entity.TurnRecord) error {
	tag, err := db.Exec(ctx, updateConversationState, convID, state)
	if err != nil {
		return fmt.Errorf("update conversation state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrConversationNotFound
	}

	if _, err := db.Exec(ctx, insertMessagePair, convID, turn.UserMessage, turn.Reply); err != nil {
		return fmt.Errorf("insert messages: %w", err)
	}

	if doc := turn.Document; doc != nil {
		if _, err := db.Exec(ctx, upsertDocument, convID, doc.DocType, doc.Content); err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
	}

	return nil
}
