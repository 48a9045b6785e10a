package document

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/pkg/logger"
	"github.com/futig/legal-assistant/internal/pkg/response"
)

type Handler struct {
	usecase DocumentUsecase
}

func NewHandler(usecase DocumentUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// GetDocument handles GET /documents/{id}
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "GetDocument"),
	)

	doc, err := h.usecase.GetDocument(ctx, id)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toDocumentDTO(doc))
}

// EditDocument handles POST /documents/{id}/edit
func (h *Handler) EditDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("action", "EditDocument"),
	)

	var req entity.EditDocumentRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.EditDocument(ctx, id, req.Instruction)
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document edit handled", zap.Bool("document_updated", resp.DocumentUpdated))
	response.Success(w, resp)
}

// ExportDocument handles GET /documents/{id}/export?format=markdown|docx|pdf
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", id),
		zap.String("format", formatParam),
		zap.String("action", "ExportDocument"),
	)

	exported, err := h.usecase.ExportDocument(ctx, id, entity.ResultFormat(formatParam))
	if err != nil {
		response.UsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document exported", zap.Int("bytes", len(exported.Data)))

	w.Header().Set("Content-Type", exported.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exported.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(exported.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exported.Data)
}
