package agent

import (
	"context"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/retry"
)

// Model capabilities return raw results of any shape; Invoker flattens them to text.

type ConversationalModel interface {
	Converse(ctx context.Context, req *entity.ConverseRequest) (any, error)
}

type DraftingModel interface {
	Draft(ctx context.Context, req *entity.DraftRequest) (any, error)
}

type PlaceholderCheckerModel interface {
	CheckPlaceholders(ctx context.Context, req *entity.PlaceholderCheckRequest) (any, error)
}

type Invoker interface {
	Invoke(ctx context.Context, op string, fn retry.Func) (string, error)
}
