package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	ButtonDocument = "/document"
	ButtonNew      = "/new"
)

// Builder creates reply keyboards
type Builder struct{}

// NewBuilder creates a new keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// MainKeyboard keeps the document and reset commands one tap away
func (b *Builder) MainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonDocument),
			tgbotapi.NewKeyboardButton(ButtonNew),
		),
	)
	kb.ResizeKeyboard = true

	return kb
}
