package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/futig/legal-assistant/internal/pkg/retry"
)

const (
	LLMProviderOpenAI = "openai"
	LLMProviderHTTP   = "http"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR,notEmpty"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15m"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MigrationsPath      string        `env:"MIGRATIONS_PATH" envDefault:"internal/repository/migrations"`

	// Language model configuration
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// Speech recognition for voice messages (optional)
	ASRCfg ASRConnectorConfig `envPrefix:"ASR_"`

	// Turn orchestration
	AgentCfg AgentConfig `envPrefix:"AGENT_"`

	// Idle per-conversation locks are evicted after this long
	TurnLockIdleTTL time.Duration `env:"TURNLOCK_IDLE_TTL" envDefault:"30m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConfig selects and configures the language model backend.
type LLMConfig struct {
	Provider    string        `env:"PROVIDER" envDefault:"openai"`
	APIKey      string        `env:"API_KEY"`
	BaseURL     string        `env:"BASE_URL"`
	Model       string        `env:"MODEL" envDefault:"gpt-4o-mini"`
	Temperature float32       `env:"TEMPERATURE" envDefault:"0.2"`
	MaxTokens   int           `env:"MAX_TOKENS" envDefault:"4096"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"5m"`

	HTTP  LLMConnectorConfig   `envPrefix:"HTTP_"`
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// LLMConnectorConfig describes a self-hosted inference service exposing one
// endpoint per model capability.
type LLMConnectorConfig struct {
	HTTPClientConfig
	ConverseEndpoint          string `env:"CONVERSE_ENDPOINT" envDefault:"/converse"`
	DraftEndpoint             string `env:"DRAFT_ENDPOINT" envDefault:"/draft"`
	CheckPlaceholdersEndpoint string `env:"CHECK_PLACEHOLDERS_ENDPOINT" envDefault:"/check-placeholders"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"5m"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"5m"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// ASRConnectorConfig describes the speech recognition service. Voice messages
// are rejected when no service URL is set.
type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string `env:"TRANSCRIBE_ENDPOINT" envDefault:"/transcribe"`
}

func (c ASRConnectorConfig) Enabled() bool {
	return c.Url != ""
}

// AgentConfig holds turn orchestration policy.
type AgentConfig struct {
	MaxMissingPrompts int `env:"MAX_MISSING_PROMPTS" envDefault:"2"`
	HistoryLimit      int `env:"HISTORY_LIMIT" envDefault:"50"`
	MaxMessageLength  int `env:"MAX_MESSAGE_LENGTH" envDefault:"8000"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	MaxConcurrentUsers int    `env:"MAX_CONCURRENT_USERS" envDefault:"50"`
	ExportFormat       string `env:"EXPORT_FORMAT" envDefault:"docx"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	MaxVoiceDuration   int    `env:"MAX_VOICE_DURATION" envDefault:"300"` // seconds
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Language model
	switch cfg.LLMCfg.Provider {
	case LLMProviderOpenAI:
		if cfg.LLMCfg.APIKey == "" && cfg.LLMCfg.BaseURL == "" && !cfg.EnableMocks {
			errors = append(errors, "LLM_API_KEY or LLM_BASE_URL is required for the openai provider")
		}
	case LLMProviderHTTP:
		if cfg.LLMCfg.HTTP.Url == "" && !cfg.EnableMocks {
			errors = append(errors, "LLM_HTTP_SERVICE_URL is required for the http provider")
		}
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q", LLMProviderOpenAI, LLMProviderHTTP, cfg.LLMCfg.Provider))
	}

	if cfg.LLMCfg.Temperature < 0 || cfg.LLMCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %g", cfg.LLMCfg.Temperature))
	}

	if cfg.LLMCfg.Retry.Attempts < 1 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be at least 1, got %d", cfg.LLMCfg.Retry.Attempts))
	}

	if cfg.LLMCfg.Retry.Delay < 0 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_DELAY must not be negative, got %s", cfg.LLMCfg.Retry.Delay))
	}

	// Agent policy
	if cfg.AgentCfg.MaxMissingPrompts < 0 || cfg.AgentCfg.MaxMissingPrompts > 10 {
		errors = append(errors, fmt.Sprintf("AGENT_MAX_MISSING_PROMPTS must be between 0 and 10, got %d", cfg.AgentCfg.MaxMissingPrompts))
	}

	if cfg.AgentCfg.HistoryLimit < 1 || cfg.AgentCfg.HistoryLimit > 1000 {
		errors = append(errors, fmt.Sprintf("AGENT_HISTORY_LIMIT must be between 1 and 1000, got %d", cfg.AgentCfg.HistoryLimit))
	}

	if cfg.AgentCfg.MaxMessageLength < 1 {
		errors = append(errors, fmt.Sprintf("AGENT_MAX_MESSAGE_LENGTH must be positive, got %d", cfg.AgentCfg.MaxMessageLength))
	}

	// Telegram
	if cfg.TelegramCfg.MaxConcurrentUsers < 1 || cfg.TelegramCfg.MaxConcurrentUsers > 1000 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_MAX_CONCURRENT_USERS must be between 1 and 1000, got %d", cfg.TelegramCfg.MaxConcurrentUsers))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitBurst < 1 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE and TELEGRAM_RATE_LIMIT_BURST must be positive, got %d and %d",
			cfg.TelegramCfg.RateLimitPerMinute, cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.MaxVoiceDuration < 1 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_MAX_VOICE_DURATION must be positive, got %d", cfg.TelegramCfg.MaxVoiceDuration))
	}

	switch cfg.TelegramCfg.ExportFormat {
	case "markdown", "docx", "pdf":
	default:
		errors = append(errors, fmt.Sprintf("TELEGRAM_EXPORT_FORMAT must be markdown, docx or pdf, got %q", cfg.TelegramCfg.ExportFormat))
	}

	// Database
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
