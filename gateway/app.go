package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/gateway/routes"
	"github.com/like-mike/fastgpt-gateway/gateway/routes/proxy"
	"github.com/like-mike/fastgpt-gateway/shared/config"
	"github.com/like-mike/fastgpt-gateway/shared/logger"
	"github.com/like-mike/fastgpt-gateway/shared/tracer"
	"github.com/like-mike/fastgpt-gateway/shared/usage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg, err := config.LoadConfig(os.Getenv("GATEWAY_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log)
	defer func() { _ = zlog.Sync() }()

	for _, name := range config.Unconfigured(cfg) {
		zlog.Warn("upstream binding not configured; its routes will fail", zap.String("binding", name))
	}

	// Initialize OpenTelemetry tracer
	tp, err := tracer.InitTracer(context.Background(), cfg.Tracing)
	if err != nil {
		zlog.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			zlog.Error("error shutting down tracer provider", zap.Error(err))
		}
	}()

	recorder := usage.NewRecorder(zlog, usage.DefaultWorkerConfig())
	recorder.Start()
	defer recorder.Stop()

	r := routes.SetupRouter(cfg, zlog, proxy.NewForwarder(nil, zlog), recorder)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("Unified API Gateway is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
