package agent

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/logger"
	"github.com/futig/legal-assistant/internal/pkg/response"
)

type Handler struct {
	usecase AgentUsecase
}

func NewHandler(usecase AgentUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// SendMessage handles POST /agent/{id}/message
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "SendMessage"),
	)

	var req entity.SendMessageRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.SendMessage(ctx, id, req.Content)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "message handled", zap.Bool("document_updated", resp.DocumentUpdated))
	response.Success(w, resp)
}

// StreamMessage handles POST /agent/{id}/stream. The turn completes before the
// first event is written, so failures still get a regular JSON error.
func (h *Handler) StreamMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "StreamMessage"),
	)

	var req entity.SendMessageRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.SendMessage(ctx, id, req.Content)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	if err := writeReply(newEventStream(w), resp); err != nil {
		ctxzap.Warn(ctx, "client went away during stream", zap.Error(err))
	}
}
