package document

import (
	"context"

	"github.com/futig/legal-assistant/internal/entity"
)

type DocumentUsecase interface {
	GetDocument(ctx context.Context, id string) (*entity.Document, error)
	EditDocument(ctx context.Context, id, instruction string) (*entity.SendMessageResponse, error)
	ExportDocument(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportedDocument, error)
}
