package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/integration/common"
	pkghttp "github.com/futig/legal-assistant/pkg/http"
)

// Connector calls a self-hosted inference service with one JSON endpoint per
// capability. Responses are decoded generically, e.g. {"output": "..."}.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) Converse(ctx context.Context, req *entity.ConverseRequest) (any, error) {
	return c.post(ctx, "converse", c.config.ConverseEndpoint, req)
}

func (c *Connector) Draft(ctx context.Context, req *entity.DraftRequest) (any, error) {
	return c.post(ctx, "draft", c.config.DraftEndpoint, req)
}

func (c *Connector) CheckPlaceholders(ctx context.Context, req *entity.PlaceholderCheckRequest) (any, error) {
	return c.post(ctx, "check placeholders", c.config.CheckPlaceholdersEndpoint, req)
}

func (c *Connector) post(ctx context.Context, op, endpoint string, req any) (any, error) {
	ctxzap.Info(ctx, "calling LLM service", zap.String("op", op))

	var resp any
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}

	return resp, nil
}
