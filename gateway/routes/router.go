// Package routes assembles the gateway's gin engine.
package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/gateway/routes/fastgpt"
	"github.com/like-mike/fastgpt-gateway/gateway/routes/health"
	"github.com/like-mike/fastgpt-gateway/gateway/routes/proxy"
	"github.com/like-mike/fastgpt-gateway/gateway/routes/shareauth"
	"github.com/like-mike/fastgpt-gateway/shared/credentials"
	"github.com/like-mike/fastgpt-gateway/shared/middleware"
	"github.com/like-mike/fastgpt-gateway/shared/models"
	"github.com/like-mike/fastgpt-gateway/shared/usage"
)

// SetupRouter builds the engine: explicit routes first, everything else to
// the fallback proxy. recorder may be nil to skip usage accounting.
func SetupRouter(cfg *models.Config, logger *zap.Logger, forwarder *proxy.Forwarder, recorder *usage.Recorder) *gin.Engine {
	resolver := credentials.NewResolver(cfg)

	r := gin.New()
	// Paths are forwarded as received.
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.RequestID())
	r.Use(middleware.CustomLogger(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.TracingMiddleware())
	r.Use(middleware.CredentialResolver(resolver))

	r.GET("/health", health.Handler)
	r.GET("/metrics", middleware.MetricsHandler)

	fastgpt.NewTable(resolver, forwarder, logger).WithUsage(recorder).Register(r, fastgpt.Routes())
	shareauth.Register(r, cfg.ShareAuth, logger)

	r.NoRoute(proxy.NewFallback(forwarder, logger).Handler)
	return r
}
