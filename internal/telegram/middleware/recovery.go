package middleware

import (
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/telegram/render"
)

// Sender sends a message back to the chat
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UpdateFunc processes one update
type UpdateFunc func(update tgbotapi.Update)

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct {
	logger *zap.Logger
	sender Sender
}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware(logger *zap.Logger, sender Sender) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
		sender: sender,
	}
}

// Handle recovers from panics and tells the user something went wrong
func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next UpdateFunc) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic recovered in telegram handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
				zap.Int("update_id", update.UpdateID),
			)

			if update.Message == nil {
				return
			}

			chatID := update.Message.Chat.ID
			if _, err := m.sender.Send(tgbotapi.NewMessage(chatID, render.ErrGeneric)); err != nil {
				m.logger.Error("failed to send error message",
					zap.Error(err),
					zap.Int64("chat_id", chatID),
				)
			}
		}
	}()

	next(update)
}
