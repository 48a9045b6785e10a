package render

import (
	"errors"

	"github.com/futig/legal-assistant/internal/entity"
)

// MaxMessageLength is the Telegram limit for one text message.
const MaxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! I help you prepare legal documents.

Tell me what you need, for example "an NDA between Alice LLC and Bob Inc", and answer my questions. When the draft is ready I will send it as a file.

Commands:
/new - start a new document
/document - get the current draft
/help - show this message`

	MsgNewConversation = "🆕 Started over. What document do you need?"
	MsgTextOnly        = "✍️ I can only read text messages for now."
	MsgNoDocument      = "📭 There is no draft yet. Keep describing the document and ask me to draft it."
	MsgUnknownCommand  = "❌ Unknown command. Use /help"
	MsgDocumentCaption = "📄 Current draft"
	MsgNoSpeech        = "🔇 I could not make out any speech. Please try again or type your message."
	MsgHeardFormat     = "🎙 I heard: %s"
)

const (
	ErrGeneric     = "❌ Something went wrong. Please try again or use /new"
	ErrUnavailable = "⏳ The language model is busy right now. Please try again in a minute."
	ErrModel       = "⚠️ The language model could not handle this request. Please try again."
	ErrTooLong     = "✂️ The message is too long, please shorten it."
	ErrRateLimited = "⚠️ Too many messages. Please wait a little."
	ErrVoiceLong   = "✂️ The voice message is too long. Please keep it under %d seconds."
	ErrVoice       = "⚠️ I could not process the voice message. Please type it instead."
)

// ErrorText picks the user-facing text for a failed turn.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, entity.ErrModelUnavailable):
		return ErrUnavailable
	case errors.Is(err, entity.ErrModelFailure):
		return ErrModel
	case errors.Is(err, entity.ErrNoDraft), errors.Is(err, entity.ErrDocumentNotFound):
		return MsgNoDocument
	case errors.Is(err, entity.ErrEmptyTranscription):
		return MsgNoSpeech
	case errors.Is(err, entity.ErrTranscriptionFailed):
		return ErrVoice
	case errors.Is(err, entity.ErrInvalidParameter):
		return ErrTooLong
	default:
		return ErrGeneric
	}
}

// Split cuts text into pieces no longer than limit runes, preferring line breaks.
func Split(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}

		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}

	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}

	return parts
}
