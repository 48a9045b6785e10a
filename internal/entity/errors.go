package entity

import "errors"

// Domain errors
var (
	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNoDraft              = errors.New("conversation has no draft yet")

	// Language model errors
	ErrModelUnavailable = errors.New("language model service unavailable")
	ErrModelFailure     = errors.New("language model request failed")

	// Speech recognition errors
	ErrTranscriptionFailed = errors.New("speech recognition failed")
	ErrEmptyTranscription  = errors.New("no speech recognized")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
