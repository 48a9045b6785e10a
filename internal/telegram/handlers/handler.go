package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/logger"
	"github.com/futig/legal-assistant/internal/telegram/keyboard"
	"github.com/futig/legal-assistant/internal/telegram/render"
)

// Handler turns chat messages into dialogue turns. Every chat owns one
// conversation, referenced as telegram:<chat id>.
type Handler struct {
	sender       Sender
	usecase      ConversationUsecase
	keyboard     *keyboard.Builder
	exportFormat entity.ResultFormat
	voice        VoiceConfig
}

// VoiceConfig enables voice messages. A nil Transcriber disables them.
type VoiceConfig struct {
	Transcriber Transcriber
	Files       FileDownloader
	MaxDuration int // seconds
}

func NewHandler(
	sender Sender,
	usecase ConversationUsecase,
	keyboard *keyboard.Builder,
	exportFormat entity.ResultFormat,
	voice VoiceConfig,
) *Handler {
	return &Handler{
		sender:       sender,
		usecase:      usecase,
		keyboard:     keyboard,
		exportFormat: exportFormat,
		voice:        voice,
	}
}

func ExternalRef(chatID int64) string {
	return fmt.Sprintf("telegram:%d", chatID)
}

// HandleMessage answers one incoming message. Failures are reported to the
// user; the returned error is for logging only.
func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	ctx = logger.AddFields(ctx, zap.Int64("chat_id", chatID))

	if msg.IsCommand() {
		return h.handleCommand(ctx, msg)
	}

	if msg.Voice != nil {
		return h.handleVoice(ctx, chatID, msg.Voice)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return h.send(chatID, render.MsgTextOnly)
	}

	return h.handleText(ctx, chatID, text)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	command := msg.Command()

	ctxzap.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start", "help":
		if _, err := h.usecase.EnsureExternalConversation(ctx, ExternalRef(chatID)); err != nil {
			_ = h.send(chatID, render.ErrGeneric)
			return fmt.Errorf("ensure conversation: %w", err)
		}
		return h.send(chatID, render.MsgWelcome)

	case "new":
		if err := h.usecase.ResetExternalConversation(ctx, ExternalRef(chatID)); err != nil {
			_ = h.send(chatID, render.ErrGeneric)
			return err
		}
		if _, err := h.usecase.EnsureExternalConversation(ctx, ExternalRef(chatID)); err != nil {
			_ = h.send(chatID, render.ErrGeneric)
			return fmt.Errorf("ensure conversation: %w", err)
		}
		return h.send(chatID, render.MsgNewConversation)

	case "document":
		conv, err := h.usecase.EnsureExternalConversation(ctx, ExternalRef(chatID))
		if err != nil {
			_ = h.send(chatID, render.ErrGeneric)
			return fmt.Errorf("ensure conversation: %w", err)
		}
		return h.sendDocument(ctx, chatID, conv.ID)

	default:
		return h.send(chatID, render.MsgUnknownCommand)
	}
}

func (h *Handler) handleText(ctx context.Context, chatID int64, text string) error {
	conv, err := h.usecase.EnsureExternalConversation(ctx, ExternalRef(chatID))
	if err != nil {
		_ = h.send(chatID, render.ErrGeneric)
		return fmt.Errorf("ensure conversation: %w", err)
	}

	return h.runTurn(ctx, chatID, conv.ID, text)
}

// handleVoice transcribes a voice note, echoes what was heard and runs it as
// an ordinary turn.
func (h *Handler) handleVoice(ctx context.Context, chatID int64, voice *tgbotapi.Voice) error {
	if h.voice.Transcriber == nil {
		return h.send(chatID, render.MsgTextOnly)
	}

	if voice.Duration > h.voice.MaxDuration {
		return h.send(chatID, fmt.Sprintf(render.ErrVoiceLong, h.voice.MaxDuration))
	}

	ctx = logger.AddFields(ctx, zap.Int("voice_duration", voice.Duration))

	conv, err := h.usecase.EnsureExternalConversation(ctx, ExternalRef(chatID))
	if err != nil {
		_ = h.send(chatID, render.ErrGeneric)
		return fmt.Errorf("ensure conversation: %w", err)
	}

	typing := NewTypingNotifier(h.sender, chatID)
	typing.Start(ctx)
	text, err := h.transcribe(ctx, voice)
	typing.Stop()

	if err != nil {
		_ = h.send(chatID, render.ErrorText(err))
		return fmt.Errorf("transcribe voice: %w", err)
	}

	if err := h.send(chatID, fmt.Sprintf(render.MsgHeardFormat, text)); err != nil {
		return err
	}

	return h.runTurn(ctx, chatID, conv.ID, text)
}

func (h *Handler) transcribe(ctx context.Context, voice *tgbotapi.Voice) (string, error) {
	audio, err := h.voice.Files.Download(ctx, voice.FileID)
	if err != nil {
		return "", fmt.Errorf("%w: download: %w", entity.ErrTranscriptionFailed, err)
	}

	return h.voice.Transcriber.Transcribe(ctx, audio, voice.FileUniqueID+".ogg")
}

func (h *Handler) runTurn(ctx context.Context, chatID int64, conversationID, text string) error {
	typing := NewTypingNotifier(h.sender, chatID)
	typing.Start(ctx)
	resp, err := h.usecase.SendMessage(ctx, conversationID, text)
	typing.Stop()

	if err != nil {
		_ = h.send(chatID, render.ErrorText(err))
		return fmt.Errorf("send message: %w", err)
	}

	for _, part := range render.Split(resp.AssistantReply, render.MaxMessageLength) {
		if err := h.send(chatID, part); err != nil {
			return err
		}
	}

	if resp.DocumentUpdated {
		return h.sendDocument(ctx, chatID, conversationID)
	}

	return nil
}

func (h *Handler) sendDocument(ctx context.Context, chatID int64, conversationID string) error {
	exported, err := h.usecase.ExportDocument(ctx, conversationID, h.exportFormat)
	if err != nil {
		if errors.Is(err, entity.ErrDocumentNotFound) {
			return h.send(chatID, render.MsgNoDocument)
		}
		_ = h.send(chatID, render.ErrGeneric)
		return fmt.Errorf("export document: %w", err)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  exported.Filename,
		Bytes: exported.Data,
	})
	doc.Caption = render.MsgDocumentCaption

	if _, err := h.sender.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	ctxzap.Info(ctx, "document sent", zap.String("filename", exported.Filename))
	return nil
}

func (h *Handler) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = h.keyboard.MainKeyboard()

	if _, err := h.sender.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}
