package conversation

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/futig/legal-assistant/internal/entity"
)

const defaultFileName = "document"

// ExportDocument renders the stored document in the requested format
func (uc *ConversationUsecase) ExportDocument(
	ctx context.Context,
	id string,
	format entity.ResultFormat,
) (*entity.ExportedDocument, error) {
	if err := uc.validator.ValidateExportFormat(format); err != nil {
		return nil, err
	}

	doc, err := uc.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(doc.DocType, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("format document as %s: %w", format, err)
	}

	return &entity.ExportedDocument{
		Filename:    fileName(doc.DocType) + f.FileExtension(),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// fileName turns a document type into a lower-case, dash separated name.
func fileName(docType string) string {
	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(docType) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}

	if b.Len() == 0 {
		return defaultFileName
	}
	return b.String()
}
