// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sonnimal/internal/api"
	"sonnimal/internal/app"
	"sonnimal/internal/common/config"
	"sonnimal/internal/common/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("startup failed", zap.Error(err))
	}
	defer application.Close()

	server := api.NewServer(application.Analyzer, application.History, application.Ready, log)
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     server.Router(),
		ReadTimeout: config.GetDuration(cfg.Server.ReadTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during API server shutdown", zap.Error(err))
	}
	zapLog.Info("API server stopped gracefully")
}
