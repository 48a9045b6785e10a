package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/telegram/middleware"
)

const rateLimitCleanupInterval = 10 * time.Minute

// MessageHandler answers one chat message
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *tgbotapi.Message) error
}

// Bot runs the long polling loop and dispatches updates concurrently,
// bounded by MaxConcurrentUsers.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handler     MessageHandler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	slots       chan struct{}
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New authorizes the bot token
func New(cfg *config.TelegramConfig, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:         api,
		cfg:         cfg,
		logger:      logger,
		loggingMW:   middleware.NewLoggingMiddleware(logger),
		recoveryMW:  middleware.NewRecoveryMiddleware(logger, api),
		rateLimitMW: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		slots:       make(chan struct{}, max(cfg.MaxConcurrentUsers, 1)),
		stopChan:    make(chan struct{}),
	}, nil
}

// API exposes the client so handlers can send replies
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

func (b *Bot) SetHandler(handler MessageHandler) {
	b.handler = handler
}

// Start begins long polling in the background
func (b *Bot) Start(ctx context.Context) error {
	if b.handler == nil {
		return fmt.Errorf("telegram bot has no message handler")
	}

	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx, updates)
	go b.cleanupRateLimits(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops polling and waits for in-flight turns
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			select {
			case b.slots <- struct{}{}:
			case <-b.stopChan:
				return
			}

			// Turns already started run to completion; Stop waits for them.
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer func() {
					<-b.slots
					b.wg.Done()
				}()
				b.handleUpdate(context.WithoutCancel(ctx), u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u tgbotapi.Update) {
			b.recoveryMW.Handle(u, func(u tgbotapi.Update) {
				if u.Message == nil {
					return
				}

				if err := b.handler.HandleMessage(ctx, u.Message); err != nil {
					ctxzap.Error(ctx, "failed to handle telegram message",
						zap.Error(err),
						zap.Int64("chat_id", u.Message.Chat.ID),
					)
				}
			})
		})
	})
}

func (b *Bot) cleanupRateLimits(ctx context.Context) {
	ticker := time.NewTicker(rateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.rateLimitMW.Cleanup()
		case <-ctx.Done():
			return
		case <-b.stopChan:
			return
		}
	}
}
