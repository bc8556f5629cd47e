// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sonnimal/internal/app"
	"sonnimal/internal/common/camunda"
	"sonnimal/internal/common/config"
	"sonnimal/internal/common/logger"
	ar "sonnimal/internal/workers/analysis/analyze-reviews"
	"sonnimal/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	if !cfg.Camunda.Enabled {
		zapLog.Fatal("camunda is disabled in config; nothing to run")
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("startup failed", zap.Error(err))
	}
	defer application.Close()

	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(camunda.ConfigFrom(cfg.Camunda), log)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Workers ---
	var workers []*camunda.CamundaWorker
	if config.IsWorkerEnabled(cfg, ar.TaskType) {
		activity, _ := reg.FindByTaskType(ar.TaskType)
		wcfg := ar.LoadConfig(cfg, activity)
		handler := ar.NewHandler(wcfg, application.Analyzer, reg, log)
		w := camunda.NewWorker(zeebe.GetClient(), ar.TaskType, wcfg.MaxJobsActive, handler, log)
		w.Start()
		workers = append(workers, w)
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", ar.TaskType))
	}

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
		if err := application.Ready(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	mux.Handle("/metrics", promhttp.Handler())

	healthSrv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.HealthPort), Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", healthSrv.Addr))
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status, detail string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if detail != "" {
		body["error"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
