package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	pkghttp "github.com/futig/legal-assistant/pkg/http"
)

// Bots may download files up to 20MB through the Bot API.
const (
	maxDownloadSize = 20 << 20
	downloadTimeout = time.Minute
)

// FileDownloader fetches files users sent to the bot.
type FileDownloader struct {
	api       *tgbotapi.BotAPI
	connector *pkghttp.Connector
}

func NewFileDownloader(api *tgbotapi.BotAPI, logger *zap.Logger) *FileDownloader {
	return &FileDownloader{
		api: api,
		connector: pkghttp.NewConnector(
			&pkghttp.ConnectorConfig{Logger: logger},
			pkghttp.WithRequestTimeout(downloadTimeout),
		),
	}
}

func (d *FileDownloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := d.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve telegram file: %w", err)
	}

	data, err := d.connector.Download(ctx, url, maxDownloadSize)
	if err != nil {
		return nil, fmt.Errorf("download telegram file: %w", err)
	}

	return data, nil
}
