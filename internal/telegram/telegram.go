package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/telegram/bot"
	"github.com/futig/legal-assistant/internal/telegram/handlers"
	"github.com/futig/legal-assistant/internal/telegram/keyboard"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot. A nil transcriber disables voice messages.
func NewBot(
	cfg *config.TelegramConfig,
	conversationUC handlers.ConversationUsecase,
	transcriber handlers.Transcriber,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b.SetHandler(handlers.NewHandler(
		b.API(),
		conversationUC,
		keyboard.NewBuilder(),
		entity.ResultFormat(cfg.ExportFormat),
		handlers.VoiceConfig{
			Transcriber: transcriber,
			Files:       bot.NewFileDownloader(b.API(), logger),
			MaxDuration: cfg.MaxVoiceDuration,
		},
	))

	logger.Info("telegram bot initialized successfully",
		zap.String("export_format", cfg.ExportFormat),
		zap.Int("max_concurrent_users", cfg.MaxConcurrentUsers),
		zap.Bool("voice_enabled", transcriber != nil),
	)

	return b, nil
}
