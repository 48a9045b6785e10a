package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futig/legal-assistant/internal/entity"
)

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format("NDA", "1. Parties: Alice and Bob")

	require.NoError(t, err)
	assert.Equal(t, "# NDA\n\n1. Parties: Alice and Bob\n", string(out))
}

func TestMarkdownFormatterDefaultTitle(t *testing.T) {
	out, err := NewMarkdownFormatter().Format("  ", "body")

	require.NoError(t, err)
	assert.Equal(t, "# Legal Document\n\nbody\n", string(out))
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format("Lease Agreement", "This Lease is entered into as of 2025-07-09.")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	cases := map[entity.ResultFormat]string{
		entity.FormatMarkdown: ".md",
		entity.FormatDOCX:     ".docx",
		entity.FormatPDF:      ".pdf",
	}
	for format, ext := range cases {
		f, err := factory.Create(format)
		require.NoError(t, err)
		assert.Equal(t, ext, f.FileExtension())
	}

	_, err := factory.Create("html")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}
