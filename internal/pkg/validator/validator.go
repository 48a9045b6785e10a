package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
)

// Validator checks user supplied requests before they reach the agent
type Validator struct {
	maxMessageLength int
}

func NewValidator(cfg config.AgentConfig) *Validator {
	return &Validator{maxMessageLength: cfg.MaxMessageLength}
}

// ValidateSendMessage validates SendMessageRequest
func (v *Validator) ValidateSendMessage(req *entity.SendMessageRequest) error {
	return v.validateText("content", req.Content)
}

// ValidateEditDocument validates EditDocumentRequest
func (v *Validator) ValidateEditDocument(req *entity.EditDocumentRequest) error {
	return v.validateText("instruction", req.Instruction)
}

func (v *Validator) ValidateExportFormat(format entity.ResultFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: %q (allowed: markdown, docx, pdf)", entity.ErrInvalidFormat, format)
	}

	return nil
}

func (v *Validator) validateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %s", entity.ErrMissingField, field)
	}

	if v.maxMessageLength > 0 && utf8.RuneCountInString(text) > v.maxMessageLength {
		return fmt.Errorf("%w: %s is longer than %d characters", entity.ErrInvalidParameter, field, v.maxMessageLength)
	}

	return nil
}
