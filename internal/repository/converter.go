package repository

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/futig/legal-assistant/internal/entity"
)

func parseID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: conversation id %q", entity.ErrInvalidParameter, id)
	}

	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func toText(value *string) pgtype.Text {
	if value == nil || *value == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *value, Valid: true}
}

func encodeState(state *entity.ConversationState) ([]byte, error) {
	if state == nil {
		state = entity.NewConversationState()
	}

	raw, err := sonic.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode conversation state: %w", err)
	}

	return raw, nil
}

func decodeState(raw []byte) (*entity.ConversationState, error) {
	state := entity.NewConversationState()
	if len(raw) == 0 {
		return state, nil
	}

	if err := sonic.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("decode conversation state: %w", err)
	}

	if state.NeededFields == nil {
		state.NeededFields = make(map[string]string)
	}

	return state, nil
}

func scanConversation(row pgx.Row) (*entity.Conversation, error) {
	var (
		id          pgtype.UUID
		externalRef pgtype.Text
		rawState    []byte
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	if err := row.Scan(&id, &externalRef, &rawState, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	state, err := decodeState(rawState)
	if err != nil {
		return nil, err
	}

	conv := &entity.Conversation{
		ID:        uuid.UUID(id.Bytes).String(),
		State:     state,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}
	if externalRef.Valid {
		conv.ExternalRef = &externalRef.String
	}

	return conv, nil
}

func scanMessage(row pgx.Row) (entity.Message, error) {
	var (
		msg            entity.Message
		conversationID pgtype.UUID
		sender         string
		createdAt      pgtype.Timestamptz
	)

	if err := row.Scan(&msg.ID, &conversationID, &sender, &msg.Content, &createdAt); err != nil {
		return entity.Message{}, err
	}

	msg.ConversationID = uuid.UUID(conversationID.Bytes).String()
	msg.Sender = entity.MessageSender(sender)
	msg.CreatedAt = createdAt.Time

	return msg, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		doc            entity.Document
		conversationID pgtype.UUID
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	if err := row.Scan(&conversationID, &doc.DocType, &doc.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	doc.ConversationID = uuid.UUID(conversationID.Bytes).String()
	doc.CreatedAt = createdAt.Time
	doc.UpdatedAt = updatedAt.Time

	return &doc, nil
}
