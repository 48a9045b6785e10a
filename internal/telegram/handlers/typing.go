package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Telegram shows "typing" for about five seconds.
const typingInterval = 4 * time.Second

// TypingNotifier keeps the typing indicator alive while a turn runs
type TypingNotifier struct {
	sender Sender
	chatID int64
	done   chan struct{}
	once   sync.Once
}

func NewTypingNotifier(sender Sender, chatID int64) *TypingNotifier {
	return &TypingNotifier{
		sender: sender,
		chatID: chatID,
		done:   make(chan struct{}),
	}
}

// Start sends the first indicator right away and then repeats it until Stop.
func (t *TypingNotifier) Start(ctx context.Context) {
	t.notify(ctx)

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.notify(ctx)
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (t *TypingNotifier) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *TypingNotifier) notify(ctx context.Context) {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.sender.Request(action); err != nil {
		ctxzap.Debug(ctx, "failed to send typing action", zap.Error(err))
	}
}
