package common

import (
	"github.com/tactohq/ingest-backend/internal/config"
	pkgHTTP "github.com/tactohq/ingest-backend/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a JSON connector from the shared HTTP client
// config. Extra options (auth transports, static headers) come from the
// caller since each external service authenticates differently.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger, extra ...pkgHTTP.Option) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	options := []pkgHTTP.Option{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnTimeout(cfg.ConnTimeout),
		pkgHTTP.WithKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}
	options = append(options, extra...)

	return pkgHTTP.NewConnector(connCfg, options...)
}
