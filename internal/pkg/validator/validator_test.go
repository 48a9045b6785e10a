package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
)

func TestValidateSendMessage(t *testing.T) {
	v := NewValidator(config.AgentConfig{MaxMessageLength: 10})

	assert.NoError(t, v.ValidateSendMessage(&entity.SendMessageRequest{Content: "NDA please"}))
	assert.ErrorIs(t, v.ValidateSendMessage(&entity.SendMessageRequest{Content: "   "}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateSendMessage(&entity.SendMessageRequest{Content: strings.Repeat("a", 11)}), entity.ErrInvalidParameter)
}

func TestValidateEditDocument(t *testing.T) {
	v := NewValidator(config.AgentConfig{MaxMessageLength: 100})

	assert.NoError(t, v.ValidateEditDocument(&entity.EditDocumentRequest{Instruction: "add a confidentiality clause"}))
	assert.ErrorIs(t, v.ValidateEditDocument(&entity.EditDocumentRequest{}), entity.ErrMissingField)
}

func TestValidateExportFormat(t *testing.T) {
	v := NewValidator(config.AgentConfig{})

	for _, format := range []entity.ResultFormat{entity.FormatMarkdown, entity.FormatDOCX, entity.FormatPDF} {
		assert.NoError(t, v.ValidateExportFormat(format))
	}
	assert.ErrorIs(t, v.ValidateExportFormat("html"), entity.ErrInvalidFormat)
}
