package common

import (
	"go.uber.org/zap"

	"github.com/futig/legal-assistant/internal/config"
	pkgHTTP "github.com/futig/legal-assistant/pkg/http"
)

const userAgent = "legal-assistant/1.0"

// NewBaseConnector builds the JSON connector every outbound integration uses.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithUserAgent(userAgent),
		pkgHTTP.WithAuthToken(cfg.Token),
	)
}
