package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/retry"
	"github.com/futig/legal-assistant/internal/usecase/agent"
	pkghttp "github.com/futig/legal-assistant/pkg/http"
)

type recordingChatModel struct {
	input []*schema.Message
	reply string
	err   error
}

func (m *recordingChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *recordingChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestOpenAIConnectorConversePrompt(t *testing.T) {
	chat := &recordingChatModel{reply: `{"user_reply": "hi"}`}
	conn := NewOpenAIConnectorWithModel(chat)

	out, err := conn.Converse(context.Background(), &entity.ConverseRequest{
		History: []entity.Message{
			{Sender: entity.SenderUser, Content: "I need an NDA"},
			{Sender: entity.SenderAssistant, Content: "Who are the parties?"},
		},
		UserInput:    "Alice {LLC} and Bob",
		StateSummary: "type=NDA, drafted=no, fields=[]",
		SystemNote:   "missing the date",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"user_reply": "hi"}`, retry.ToText(out))

	require.Len(t, chat.input, 4)
	assert.Equal(t, schema.System, chat.input[0].Role)
	assert.Contains(t, chat.input[0].Content, "type=NDA, drafted=no, fields=[]")
	assert.Contains(t, chat.input[0].Content, "Internal note: missing the date")
	assert.Contains(t, chat.input[0].Content, `{"actions": [], "user_reply"`)
	assert.Equal(t, schema.User, chat.input[1].Role)
	assert.Equal(t, schema.Assistant, chat.input[2].Role)
	assert.Equal(t, "Alice {LLC} and Bob", chat.input[3].Content)
}

func TestOpenAIConnectorDraftPrompt(t *testing.T) {
	chat := &recordingChatModel{reply: `{"draft": "x"}`}
	conn := NewOpenAIConnectorWithModel(chat)

	_, err := conn.Draft(context.Background(), &entity.DraftRequest{
		DocumentType: "NDA",
		FieldsJSON:   `{"Party A":"Alice"}`,
		Instruction:  "create fresh draft",
	})

	require.NoError(t, err)
	require.Len(t, chat.input, 2)
	assert.Contains(t, chat.input[0].Content, "Document type: NDA")
	assert.Contains(t, chat.input[0].Content, `Field values (JSON): {"Party A":"Alice"}`)
	assert.Contains(t, chat.input[0].Content, `{"draft": "<the complete draft>", "is_drafted": true}`)
}

func TestOpenAIConnectorCheckPrompt(t *testing.T) {
	chat := &recordingChatModel{reply: `{"is_success": true}`}

	_, err := NewOpenAIConnectorWithModel(chat).CheckPlaceholders(context.Background(), &entity.PlaceholderCheckRequest{
		Draft: "NDA dated [DATE]",
	})

	require.NoError(t, err)
	assert.Contains(t, chat.input[0].Content, "NDA dated [DATE]")
}

func TestOpenAIConnectorError(t *testing.T) {
	chat := &recordingChatModel{err: errors.New("error, status code: 503, message: overloaded")}

	_, err := NewOpenAIConnectorWithModel(chat).Converse(context.Background(), &entity.ConverseRequest{})

	require.Error(t, err)
	assert.True(t, retry.IsTransient(err))
}

func newTestHTTPConnector(url string) *Connector {
	return NewConnector(config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Token:                 "secret",
			Url:                   url,
		},
		ConverseEndpoint:          "/converse",
		DraftEndpoint:             "/draft",
		CheckPlaceholdersEndpoint: "/check-placeholders",
	}, zap.NewNop())
}

func TestHTTPConnectorConverse(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/converse", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output": "{\"user_reply\": \"hello\"}"}`))
	}))
	defer srv.Close()

	out, err := newTestHTTPConnector(srv.URL).Converse(context.Background(), &entity.ConverseRequest{
		UserInput:    "hi",
		StateSummary: "type=—",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"user_reply": "hello"}`, retry.ToText(out))
	assert.Contains(t, body, `"user_input":"hi"`)
	assert.Contains(t, body, `"state":"type=—"`)
}

func TestHTTPConnectorServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model loading"))
	}))
	defer srv.Close()

	_, err := newTestHTTPConnector(srv.URL).Draft(context.Background(), &entity.DraftRequest{DocumentType: "NDA"})

	require.Error(t, err)
	assert.True(t, pkghttp.IsServiceUnavailable(err))

	var httpErr *pkghttp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "model loading", httpErr.Message)
}

func TestMockConnectorDrivesFullTurn(t *testing.T) {
	mock := NewMockConnector(zap.NewNop())
	orch := agent.NewOrchestrator(mock, mock, mock,
		retry.NewInvoker(&retry.RetryConfig{Attempts: 1}),
		config.AgentConfig{MaxMissingPrompts: 2},
	)

	result, err := orch.RunTurn(context.Background(), &agent.TurnInput{
		State: entity.NewConversationState(),
		UserInput: strings.Join([]string{
			"Please draft an NDA",
			"Party A: Alice LLC",
			"Party B: Bob Inc",
			"Effective date: 2025-07-09",
		}, "\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, agent.ReplyDraftReady, result.Reply)
	assert.Equal(t, "NDA", result.State.DocumentType)
	require.NotNil(t, result.DraftDocument)
	assert.Contains(t, *result.DraftDocument, "Alice LLC")
	assert.Contains(t, *result.DraftDocument, "as of 2025-07-09")
}

func TestMockConnectorReportsMissingDate(t *testing.T) {
	mock := NewMockConnector(zap.NewNop())
	orch := agent.NewOrchestrator(mock, mock, mock,
		retry.NewInvoker(&retry.RetryConfig{Attempts: 1}),
		config.AgentConfig{MaxMissingPrompts: 2},
	)

	result, err := orch.RunTurn(context.Background(), &agent.TurnInput{
		State:     entity.NewConversationState(),
		UserInput: "type: Lease Agreement\nLandlord: Carol\ndraft please",
	})

	require.NoError(t, err)
	assert.False(t, result.State.IsDrafted)
	assert.Equal(t, 1, result.State.MissingPromptCount)
	assert.Contains(t, result.Reply, "[DATE]")
}
