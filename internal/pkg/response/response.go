package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := sonic.Marshal(data)
	if err != nil {
		// Can't encode the payload, fall back to a bare error
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error logs err and writes an ErrorResponse; the error itself never reaches the client
func Error(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}

	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// UsecaseError maps domain errors to HTTP statuses
func UsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrConversationNotFound) || errors.Is(err, entity.ErrDocumentNotFound):
		Error(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField):
		Error(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrNoDraft):
		Error(ctx, w, http.StatusConflict, "conversation has no draft yet", err)
	case errors.Is(err, entity.ErrModelUnavailable):
		Error(ctx, w, http.StatusServiceUnavailable, "language model is unavailable, try again later", err)
	case errors.Is(err, entity.ErrModelFailure):
		Error(ctx, w, http.StatusBadGateway, "language model request failed", err)
	case errors.Is(err, context.DeadlineExceeded):
		Error(ctx, w, http.StatusGatewayTimeout, "request timed out", err)
	default:
		Error(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
