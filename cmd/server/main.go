package main

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/config"
	"RGFlow/internal/handlers"
	"RGFlow/internal/middleware"
	"RGFlow/internal/repo"
	"RGFlow/internal/service"
	"RGFlow/internal/store"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.ServerDSN())
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	authenticator, err := auth.FromConfig(cfg.Credentials, cfg.DevMode)
	if err != nil {
		sugar.Fatalw("failed to load credentials", "error", err)
	}
	if cfg.DevMode {
		sugar.Warnw("Dev mode: demo credentials enabled", "email", auth.FixtureEmail)
	}

	st := store.New(repo.NewKVRepository(gormDB), sugar)
	svc := service.New(st, authenticator, sugar, cfg.MaxAttachmentBytes())

	h := handlers.NewHandler(svc, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DevMode", cfg.DevMode,
		"MaxAttachmentMB", cfg.MaxAttachmentMB,
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	sugar.Infow("Starting server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
