package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/telegram/render"
)

const (
	warningInterval   = 30 * time.Second
	inactiveThreshold = time.Hour
)

// chatLimit tracks the token bucket of one chat
type chatLimit struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per chat
type RateLimiterMiddleware struct {
	mu         sync.Mutex
	limits     map[int64]*chatLimit
	maxTokens  float64
	refillRate float64 // tokens per second
	logger     *zap.Logger
	sender     Sender
	now        func() time.Time
}

// NewRateLimiterMiddleware allows burst messages at once and requestsPerMinute on average
func NewRateLimiterMiddleware(requestsPerMinute, burst int, logger *zap.Logger, sender Sender) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits:     make(map[int64]*chatLimit),
		maxTokens:  float64(max(burst, 1)),
		refillRate: float64(max(requestsPerMinute, 1)) / 60.0,
		logger:     logger,
		sender:     sender,
		now:        time.Now,
	}
}

// Handle drops updates from chats that exhausted their bucket
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next UpdateFunc) {
	if update.Message == nil {
		next(update)
		return
	}

	chatID := update.Message.Chat.ID
	if !rl.allow(chatID) {
		rl.logger.Warn("rate limit exceeded", zap.Int64("chat_id", chatID))
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allow(chatID int64) bool {
	now := rl.now()

	rl.mu.Lock()
	limit, ok := rl.limits[chatID]
	if !ok {
		limit = &chatLimit{tokens: rl.maxTokens, lastRefill: now}
		rl.limits[chatID] = limit
	}
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	limit.tokens = min(rl.maxTokens, limit.tokens+now.Sub(limit.lastRefill).Seconds()*rl.refillRate)
	limit.lastRefill = now

	if limit.tokens >= 1 {
		limit.tokens--
		return true
	}

	if now.Sub(limit.lastWarningAt) > warningInterval {
		limit.lastWarningAt = now
		if _, err := rl.sender.Send(tgbotapi.NewMessage(chatID, render.ErrRateLimited)); err != nil {
			rl.logger.Error("failed to send rate limit warning",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}

	return false
}

// Cleanup forgets chats idle for more than an hour
func (rl *RateLimiterMiddleware) Cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for chatID, limit := range rl.limits {
		limit.mu.Lock()
		idle := now.Sub(limit.lastRefill) > inactiveThreshold
		limit.mu.Unlock()

		if idle {
			delete(rl.limits, chatID)
		}
	}
}
