package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/pkg/config"
	"github.com/FACorreiaa/go-petportal/internal/pkg/logger"
	"github.com/FACorreiaa/go-petportal/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Env:         cfg.Env,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	otelShutdown, err := server.InitObservability(cfg.Observability, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			zl.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv := server.New(cfg, zl)
	srv.SetRouter(server.SetupRouter(srv))

	// Start pprof server (on separate port, not exposed publicly)
	server.StartPprofServer(cfg.Observability.PprofAddr, zl)

	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go server.GracefulShutdown(httpServer, zl, done)

	zl.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("env", cfg.Env))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Error("Server error", zap.Error(err))
		return err
	}

	<-done
	zl.Info("Graceful shutdown complete")

	return nil
}
