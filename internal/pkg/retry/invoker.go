package retry

import (
	"context"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/llmtext"
	pkghttp "github.com/futig/legal-assistant/pkg/http"
)

// Func is a single model call. The result may be of any shape.
type Func func(ctx context.Context) (any, error)

// Invoker runs model calls, retrying transient failures with a fixed delay.
type Invoker struct {
	config *RetryConfig
}

func NewInvoker(cfg *RetryConfig) *Invoker {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}

	return &Invoker{config: cfg}
}

// Invoke calls fn until it succeeds or fails non-transiently and returns its
// result as text with any reasoning prefix removed. Errors wrap
// entity.ErrModelUnavailable when retries ran out and entity.ErrModelFailure otherwise.
func (i *Invoker) Invoke(ctx context.Context, op string, fn Func) (string, error) {
	opts := append(i.config.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(IsTransient),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "model service unavailable, retrying",
				zap.String("op", op),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)

	raw, err := retry.DoWithData(func() (any, error) {
		return fn(ctx)
	}, opts...)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return "", fmt.Errorf("%s: %w", op, ctx.Err())
		case IsTransient(err):
			ctxzap.Error(ctx, "model service retries exhausted", zap.String("op", op), zap.Error(err))
			return "", fmt.Errorf("%s: %w: %w", op, entity.ErrModelUnavailable, err)
		default:
			return "", fmt.Errorf("%s: %w: %w", op, entity.ErrModelFailure, err)
		}
	}

	return strings.TrimSpace(llmtext.StripReasoning(ToText(raw))), nil
}

// IsTransient reports whether err signals a temporarily unavailable service.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if pkghttp.IsServiceUnavailable(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") ||
		strings.Contains(msg, "service unavailable") ||
		strings.Contains(msg, "serviceunavailable")
}
