package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"salonpos/backend/internal/config"
	"salonpos/backend/internal/httpapi"
	"salonpos/backend/internal/logger"
	"salonpos/backend/internal/scheduler"
	"salonpos/backend/internal/service"
	"salonpos/backend/internal/state"
	"salonpos/backend/internal/store/backend"
)

func main() {
	envFile := flag.String("env", "", "path to an env file (defaults to ./.env when present)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	if err := validateServerConfig(cfg); err != nil {
		log.Fatal("invalid server configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, closers, err := backend.Open(ctx, cfg, logger.Named(log, "store"))
	if err != nil {
		log.Fatal("store unavailable", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}

	svc, err := service.New(ctx, state.New(kv, logger.Named(log, "state")), service.Options{
		Location: cfg.Location(),
		Logger:   logger.Named(log, "service"),
	})
	if err != nil {
		log.Fatal("failed to load salon state", zap.Error(err))
	}

	jobs := scheduler.New(svc, cfg.DailyCloseCron, cfg.ExportDir, logger.Named(log, "scheduler"))
	if err := jobs.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}

	api := httpapi.New(svc, cfg.AllowedOrigin, logger.Named(log, "http"))
	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("salon backend listening", zap.String("addr", cfg.Address()), zap.String("timezone", cfg.Timezone))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	jobs.Stop()

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Error("close error", zap.Error(err))
		}
	}

	log.Info("server stopped")
}

// validateServerConfig refuses settings that only make sense for local use.
func validateServerConfig(cfg config.Config) error {
	if cfg.AllowedOrigin == "*" && cfg.StoreBackend != config.BackendMemory {
		return errors.New("ALLOWED_ORIGIN=* is only allowed with the memory backend")
	}
	return nil
}
