package agent

import (
	"context"

	"github.com/futig/legal-assistant/internal/entity"
)

type AgentUsecase interface {
	SendMessage(ctx context.Context, id, content string) (*entity.SendMessageResponse, error)
}
