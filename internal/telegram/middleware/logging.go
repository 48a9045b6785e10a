package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next UpdateFunc) {
	start := time.Now()

	var chatID int64
	messageType := "other"

	if msg := update.Message; msg != nil {
		chatID = msg.Chat.ID
		switch {
		case msg.IsCommand():
			messageType = "command"
		case msg.Voice != nil:
			messageType = "voice"
		case msg.Text != "":
			messageType = "text"
		}
	}

	log := m.logger.With(
		zap.Int64("chat_id", chatID),
		zap.Int("update_id", update.UpdateID),
	)
	log.Info("telegram update received", zap.String("type", messageType))

	next(update)

	log.Info("telegram update processed", zap.Duration("duration", time.Since(start)))
}
