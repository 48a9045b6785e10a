package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/api"
	agentapi "github.com/futig/legal-assistant/internal/api/agent"
	conversationapi "github.com/futig/legal-assistant/internal/api/conversation"
	documentapi "github.com/futig/legal-assistant/internal/api/document"
	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/integration/asr"
	"github.com/futig/legal-assistant/internal/integration/llm"
	"github.com/futig/legal-assistant/internal/pkg/formatter"
	"github.com/futig/legal-assistant/internal/pkg/retry"
	"github.com/futig/legal-assistant/internal/pkg/turnlock"
	"github.com/futig/legal-assistant/internal/pkg/validator"
	"github.com/futig/legal-assistant/internal/repository"
	"github.com/futig/legal-assistant/internal/telegram"
	"github.com/futig/legal-assistant/internal/telegram/handlers"
	"github.com/futig/legal-assistant/internal/usecase/agent"
	"github.com/futig/legal-assistant/internal/usecase/conversation"
)

// model implements every capability the orchestrator needs
type model interface {
	agent.ConversationalModel
	agent.DraftingModel
	agent.PlaceholderCheckerModel
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, conversationUC, err := buildCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	handlers := api.Handlers{
		Conversation: conversationapi.NewHandler(conversationUC),
		Agent:        agentapi.NewHandler(conversationUC),
		Document:     documentapi.NewHandler(conversationUC),
	}
	logger.Info("API handlers initialized")

	router := api.SetupRouter(handlers, cfg.HTTPRequestTimeout, logger)
	logger.Info("HTTP router configured")

	// A turn may take several model calls, so writes get the whole request budget.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPRequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required to run the bot")
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	db, conversationUC, err := buildCore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var transcriber handlers.Transcriber
	switch {
	case cfg.EnableMocks:
		logger.Info("Using mock speech recognition")
		transcriber = asr.NewMockConnector(logger)
	case cfg.ASRCfg.Enabled():
		logger.Info("Using speech recognition service", zap.String("url", cfg.ASRCfg.Url))
		transcriber = asr.NewConnector(cfg.ASRCfg, logger)
	default:
		logger.Info("Speech recognition not configured, voice messages disabled")
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, conversationUC, transcriber, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildCore wires storage, the language model and the conversation use case
// shared by both binaries.
func buildCore(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
) (*pgxpool.Pool, *conversation.ConversationUsecase, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations", zap.String("path", cfg.MigrationsPath))
	if err := repository.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	conversationRepo := repository.NewConversationPostgres(db)
	messageRepo := repository.NewMessagePostgres(db)
	documentRepo := repository.NewDocumentPostgres(db)
	turnRepo := repository.NewTurnPostgres(db)
	logger.Info("Repositories initialized")

	llmModel, err := setupModel(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("setup language model: %w", err)
	}

	orchestrator := agent.NewOrchestrator(
		llmModel,
		llmModel,
		llmModel,
		retry.NewInvoker(&cfg.LLMCfg.Retry),
		cfg.AgentCfg,
	)

	conversationUC := conversation.NewUsecase(
		conversationRepo,
		messageRepo,
		documentRepo,
		turnRepo,
		orchestrator,
		turnlock.NewRegistry(cfg.TurnLockIdleTTL),
		formatter.NewFactory(),
		validator.NewValidator(cfg.AgentCfg),
		cfg.AgentCfg,
		logger,
	)
	logger.Info("Use cases initialized",
		zap.Int("history_limit", cfg.AgentCfg.HistoryLimit),
		zap.Int("max_missing_prompts", cfg.AgentCfg.MaxMissingPrompts),
	)

	return db, conversationUC, nil
}

func setupModel(ctx context.Context, cfg *config.Config, logger *zap.Logger) (model, error) {
	if cfg.EnableMocks {
		logger.Info("Using mock language model")
		return llm.NewMockConnector(logger), nil
	}

	switch cfg.LLMCfg.Provider {
	case config.LLMProviderHTTP:
		logger.Info("Using HTTP language model service", zap.String("url", cfg.LLMCfg.HTTP.Url))
		return llm.NewConnector(cfg.LLMCfg.HTTP, logger), nil
	default:
		logger.Info("Using OpenAI-compatible chat model",
			zap.String("model", cfg.LLMCfg.Model),
			zap.String("base_url", cfg.LLMCfg.BaseURL),
		)
		return llm.NewOpenAIConnector(ctx, cfg.LLMCfg)
	}
}
