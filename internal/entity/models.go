package entity

import "time"

type MessageSender string

const (
	SenderUser      MessageSender = "user"
	SenderAssistant MessageSender = "assistant"
)

type Conversation struct {
	ID          string             `json:"id"`
	ExternalRef *string            `json:"external_ref,omitempty"`
	State       *ConversationState `json:"state"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type Message struct {
	ID             int64         `json:"id"`
	ConversationID string        `json:"conversation_id"`
	Sender         MessageSender `json:"sender"`
	Content        string        `json:"content"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Document is the latest drafted artifact of a conversation.
type Document struct {
	ConversationID string    `json:"conversation_id"`
	DocType        string    `json:"doc_type"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TurnRecord is everything persisted after a completed turn.
type TurnRecord struct {
	ConversationID string
	UserMessage    string
	Reply          string
	State          *ConversationState
	Document       *Document
}

// ExportedDocument is a rendered document ready to be sent as a file.
type ExportedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ASRTranscribeResponse is the speech recognition service reply.
type ASRTranscribeResponse struct {
	Text string `json:"text"`
}
