package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/legal-assistant/internal/entity"
)

const defaultTitle = "Legal Document"

type Formatter interface {
	Format(title, plainText string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", entity.ErrInvalidFormat, format)
	}
}

// Title picks the heading of an exported document.
func Title(docType string) string {
	if title := strings.TrimSpace(docType); title != "" {
		return title
	}
	return defaultTitle
}
