package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const conversationColumns = `id, external_ref, state, created_at, updated_at`

const (
	createConversation = `
INSERT INTO conversations (id, external_ref, state)
VALUES ($1, $2, $3)
RETURNING ` + conversationColumns

	getConversation = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE id = $1`

	getConversationByExternalRef = `
SELECT ` + conversationColumns + `
FROM conversations
WHERE external_ref = $1`

	listConversations = `
SELECT ` + conversationColumns + `
FROM conversations
ORDER BY updated_at DESC, id
LIMIT $1 OFFSET $2`

	deleteConversation = `
DELETE FROM conversations
WHERE id = $1`

	clearExternalRef = `
UPDATE conversations
SET external_ref = NULL, updated_at = now()
WHERE external_ref = $1`

	updateConversationState = `
UPDATE conversations
SET state = $2, updated_at = now()
WHERE id = $1`
)

const (
	insertMessagePair = `
INSERT INTO messages (conversation_id, sender, content)
VALUES ($1, 'user', $2), ($1, 'assistant', $3)`

	listMessages = `
SELECT id, conversation_id, sender, content, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY id`

	// The newest rows are selected, then returned oldest first.
	listRecentMessages = `
SELECT id, conversation_id, sender, content, created_at
FROM (
    SELECT id, conversation_id, sender, content, created_at
    FROM messages
    WHERE conversation_id = $1
    ORDER BY id DESC
    LIMIT $2
) recent
ORDER BY id`
)

const (
	getDocument = `
SELECT conversation_id, doc_type, content, created_at, updated_at
FROM documents
WHERE conversation_id = $1`

	upsertDocument = `
INSERT INTO documents (conversation_id, doc_type, content)
VALUES ($1, $2, $3)
ON CONFLICT (conversation_id) DO UPDATE
SET doc_type = EXCLUDED.doc_type,
    content = EXCLUDED.content,
    updated_at = now()`
)
