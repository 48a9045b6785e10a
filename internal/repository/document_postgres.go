package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/futig/legal-assistant/internal/entity"
)

// DocumentRepository defines the interface for drafted document persistence
type DocumentRepository interface {
	Get(ctx context.Context, conversationID string) (*entity.Document, error)
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{
		db: db,
	}
}

func (r *DocumentPostgres) Get(ctx context.Context, conversationID string) (*entity.Document, error) {
	convID, err := parseID(conversationID)
	if err != nil {
		return nil, err
	}

	doc, err := scanDocument(r.db.QueryRow(ctx, getDocument, convID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}
