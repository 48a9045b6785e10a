package asr

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/entity"
)

// MockTranscript is what MockConnector hears in every recording.
const MockTranscript = "Please draft an NDA\nParty A: Alice LLC\nParty B: Bob Inc"

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio: %w", entity.ErrInvalidParameter)
	}

	ctxzap.Info(ctx, "[MOCK] transcribing voice message",
		zap.String("filename", filename),
		zap.Int("size", len(audio)),
	)

	return MockTranscript, nil
}
