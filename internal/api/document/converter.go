package document

import (
	"time"

	"github.com/futig/legal-assistant/internal/entity"
)

func toDocumentDTO(doc *entity.Document) *entity.DocumentDTO {
	return &entity.DocumentDTO{
		ConversationID: doc.ConversationID,
		DocType:        doc.DocType,
		Content:        doc.Content,
		UpdatedAt:      doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
