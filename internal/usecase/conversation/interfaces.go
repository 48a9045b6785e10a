package conversation

import (
	"context"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/formatter"
	"github.com/futig/legal-assistant/internal/usecase/agent"
)

type TurnRunner interface {
	RunTurn(ctx context.Context, in *agent.TurnInput) (*entity.TurnResult, error)
	Refine(ctx context.Context, in *agent.RefineInput) (*entity.TurnResult, error)
}

type TurnLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
