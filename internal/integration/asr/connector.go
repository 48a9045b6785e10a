package asr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	"github.com/futig/legal-assistant/internal/entity"
	"github.com/futig/legal-assistant/internal/integration/common"
	pkghttp "github.com/futig/legal-assistant/pkg/http"
)

// Connector sends voice recordings to a speech recognition service.
type Connector struct {
	config    config.ASRConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ASRConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Transcribe returns the recognized text of one recording.
func (c *Connector) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio: %w", entity.ErrInvalidParameter)
	}

	hash := sha256.Sum256(audio)
	checksum := hex.EncodeToString(hash[:])

	ctxzap.Info(ctx, "transcribing voice message",
		zap.String("filename", filename),
		zap.String("checksum", checksum),
		zap.Int("size", len(audio)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(audio); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		return writer.WriteField("checksum", checksum)
	}

	var resp entity.ASRTranscribeResponse
	if err := c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.TranscribeEndpoint, prepareBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrTranscriptionFailed, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", entity.ErrEmptyTranscription
	}

	ctxzap.Info(ctx, "voice message transcribed", zap.Int("length", len(text)))

	return text, nil
}
