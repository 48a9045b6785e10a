package conversation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/logger"
	"github.com/futig/legal-assistant/internal/pkg/response"
)

type Handler struct {
	usecase ConversationUsecase
}

func NewHandler(usecase ConversationUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// CreateConversation handles POST /conversations
func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateConversation")

	conv, err := h.usecase.CreateConversation(ctx)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toConversationDTO(conv))
}

// ListConversations handles GET /conversations?skip=&limit=
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListConversations")

	skip, err := queryInt(r, "skip")
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	conversations, err := h.usecase.ListConversations(ctx, &entity.ListConversationsRequest{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	dtos := make([]entity.ConversationDTO, 0, len(conversations))
	for _, conv := range conversations {
		dtos = append(dtos, toConversationDTO(conv))
	}

	response.Success(w, dtos)
}

// GetConversation handles GET /conversations/{id}
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "GetConversation"),
	)

	conv, messages, err := h.usecase.GetConversation(ctx, id)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "conversation fetched", zap.Int("messages", len(messages)))
	response.Success(w, toConversationDetailDTO(conv, messages))
}

// DeleteConversation handles DELETE /conversations/{id}
func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "DeleteConversation"),
	)

	if err := h.usecase.DeleteConversation(ctx, id); err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ListMessages handles GET /conversations/{id}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "ListMessages"),
	)

	messages, err := h.usecase.ListMessages(ctx, id)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toMessageDTOs(messages))
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entity.ErrInvalidParameter, name)
	}

	return value, nil
}
