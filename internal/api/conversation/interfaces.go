package conversation

import (
	"context"

	"github.com/futig/legal-assistant/internal/entity"
)

type ConversationUsecase interface {
	CreateConversation(ctx context.Context) (*entity.Conversation, error)
	ListConversations(ctx context.Context, req *entity.ListConversationsRequest) ([]*entity.Conversation, error)
	GetConversation(ctx context.Context, id string) (*entity.Conversation, []entity.Message, error)
	DeleteConversation(ctx context.Context, id string) error
	ListMessages(ctx context.Context, id string) ([]entity.Message, error)
}
