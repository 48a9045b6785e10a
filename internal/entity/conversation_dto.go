package entity

import "time"

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SendMessageResponse struct {
	AssistantReply  string  `json:"assistant_reply"`
	Document        *string `json:"document"`
	DocumentUpdated bool    `json:"document_updated"`
}

type EditDocumentRequest struct {
	Instruction string `json:"instruction"`
}

type ListConversationsRequest struct {
	Skip  int
	Limit int
}

func (lc *ListConversationsRequest) Normalize() {
	if lc.Skip < 0 {
		lc.Skip = 0
	}

	if lc.Limit <= 0 {
		lc.Limit = 10
	}

	lc.Limit = min(lc.Limit, 100)
}

type ConversationDTO struct {
	ID           string    `json:"id"`
	DocumentType string    `json:"document_type,omitempty"`
	IsDrafted    bool      `json:"is_drafted"`
	Fields       []string  `json:"fields"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ConversationDetailDTO struct {
	ConversationDTO
	State    *ConversationState `json:"state"`
	Messages []MessageDTO       `json:"messages"`
}

type MessageDTO struct {
	Sender    MessageSender `json:"sender"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

type DocumentDTO struct {
	ConversationID string `json:"conversation_id"`
	DocType        string `json:"doc_type"`
	Content        string `json:"content"`
	UpdatedAt      string `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
