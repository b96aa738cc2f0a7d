package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openseva/grievance/internal/auth"
	"github.com/openseva/grievance/internal/config"
	"github.com/openseva/grievance/internal/httpserver"
	"github.com/openseva/grievance/internal/logger"
)

// ServerOptions bundles the wiring the HTTP server needs beyond the handler.
type ServerOptions struct {
	JWT            *auth.JWTManager
	MetricsHandler http.Handler
	UploadsDir     string
	DatabasePing   func() error
	MailerPing     func() error
}

// NewServer assembles the portal HTTP server: middleware, health routes,
// and the service endpoints.
func NewServer(handler *Handler, cfg *config.Config, log logger.Logger, opts ServerOptions) *httpserver.Server {
	builder := httpserver.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithRoutes(func(router *gin.Engine) {
			SetupServiceRoutes(router, handler, opts.JWT, opts.MetricsHandler, opts.UploadsDir)
		})

	if opts.DatabasePing != nil {
		builder = builder.WithDatabaseHealthCheck(opts.DatabasePing)
	}
	if opts.MailerPing != nil {
		builder = builder.WithHealthCheck("mailer", httpserver.MailerHealthChecker(opts.MailerPing))
	}

	return builder.Build()
}
