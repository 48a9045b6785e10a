package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/futig/legal-assistant/internal/entity"
)

// Sender is the part of *tgbotapi.BotAPI the handlers use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type ConversationUsecase interface {
	EnsureExternalConversation(ctx context.Context, ref string) (*entity.Conversation, error)
	ResetExternalConversation(ctx context.Context, ref string) error
	SendMessage(ctx context.Context, id, content string) (*entity.SendMessageResponse, error)
	ExportDocument(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportedDocument, error)
}

// Transcriber turns a voice recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// FileDownloader fetches a file the user sent to the bot.
type FileDownloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}
