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

	"catalog-admin/internal/app"
	"catalog-admin/internal/config"
	apihttp "catalog-admin/internal/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	redisClient := app.NewRedisClient(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	backend, err := app.Build(ctx, cfg, logger, redisClient)
	if err != nil {
		logger.Fatal("backend init", zap.Error(err))
	}
	defer backend.Close()

	sessions := app.NewSessionManager(cfg, redisClient)
	authHandler := apihttp.NewAuthHandler(logger, backend.Auth, sessions)
	productHandler := apihttp.NewProductHandler(logger, backend.Catalog, sessions)
	categoryHandler := apihttp.NewCategoryHandler(logger, backend.Catalog, sessions)
	router := apihttp.NewRouter(
		logger,
		sessions,
		apihttp.SessionConfig{Secure: cfg.SessionCookieSecure},
		authHandler,
		productHandler,
		categoryHandler,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("backend", cfg.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
