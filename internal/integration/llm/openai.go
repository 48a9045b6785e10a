package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
)

// OpenAIConnector talks to any OpenAI-compatible chat completion endpoint.
type OpenAIConnector struct {
	chatModel model.BaseChatModel
}

func NewOpenAIConnector(ctx context.Context, cfg config.LLMConfig) (*OpenAIConnector, error) {
	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	return NewOpenAIConnectorWithModel(chatModel), nil
}

// NewOpenAIConnectorWithModel wraps an already configured chat model.
func NewOpenAIConnectorWithModel(chatModel model.BaseChatModel) *OpenAIConnector {
	return &OpenAIConnector{chatModel: chatModel}
}

func (c *OpenAIConnector) Converse(ctx context.Context, req *entity.ConverseRequest) (any, error) {
	return c.generate(ctx, "converse", conversationalTemplate, conversationalVars(req))
}

func (c *OpenAIConnector) Draft(ctx context.Context, req *entity.DraftRequest) (any, error) {
	return c.generate(ctx, "draft", draftingTemplate, draftingVars(req))
}

func (c *OpenAIConnector) CheckPlaceholders(ctx context.Context, req *entity.PlaceholderCheckRequest) (any, error) {
	return c.generate(ctx, "check_placeholders", placeholderCheckerTemplate, placeholderCheckerVars(req))
}

func (c *OpenAIConnector) generate(ctx context.Context, op string, tpl prompt.ChatTemplate, vars map[string]any) (*schema.Message, error) {
	messages, err := tpl.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("format %s prompt: %w", op, err)
	}

	ctxzap.Debug(ctx, "calling chat model", zap.String("op", op), zap.Int("messages", len(messages)))

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%s generate: %w", op, err)
	}

	if usage := resp.ResponseMeta; usage != nil && usage.Usage != nil {
		ctxzap.Debug(ctx, "chat model usage",
			zap.String("op", op),
			zap.Int("prompt_tokens", usage.Usage.PromptTokens),
			zap.Int("completion_tokens", usage.Usage.CompletionTokens),
		)
	}

	return resp, nil
}
