package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"catalog-admin/internal/app"
	"catalog-admin/internal/config"
)

// seed_admin crea o actualiza el usuario admin del backend postgres.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Backend != config.BackendPostgres {
		log.Fatalf("seed_admin requires BACKEND=postgres (got %q)", cfg.Backend)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	// El seed lo hace este comando; Build no debe repetirlo.
	cfg.AdminEmail, cfg.AdminPassword = "", ""
	backend, err := app.Build(ctx, cfg, logger, nil)
	if err != nil {
		logger.Fatal("backend init", zap.Error(err))
	}
	defer backend.Close()

	user, err := backend.Local.EnsureAdmin(ctx, *email, *password)
	if err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}
	logger.Info("admin ready", zap.String("email", user.Email), zap.String("id", user.ID))
}
