// Package app arma las dependencias compartidas por los binarios de cmd/.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"catalog-admin/internal/config"
	"catalog-admin/internal/db"
	"catalog-admin/internal/remote"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"
	"catalog-admin/internal/session"
)

var (
	_ service.Authenticator = (*remote.Client)(nil)
	_ service.Authenticator = (*service.LocalAuthenticator)(nil)
)

// Backend agrupa los servicios listos para usar segun BACKEND.
type Backend struct {
	Catalog *service.CatalogService
	Auth    *service.AuthService
	// Local solo existe con BACKEND=postgres.
	Local *service.LocalAuthenticator

	closers []func()
}

// Close libera pool y conexiones abiertas por Build.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// NewLogger crea un logger de produccion con el nivel pedido.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// NewRedisClient devuelve nil si Redis no esta configurado o no responde.
func NewRedisClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}

// NewSessionManager usa Redis cuando hay cliente y memoria en otro caso.
func NewSessionManager(cfg *config.Config, redisClient *redis.Client) *session.Manager {
	var store session.Store
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
	}
	return session.NewManager(store, cfg.SessionTTL)
}

// Build conecta el backend elegido y arma los servicios.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		return buildRemote(cfg, logger), nil
	case config.BackendPostgres:
		return buildPostgres(ctx, cfg, logger, redisClient)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func buildRemote(cfg *config.Config, logger *zap.Logger) *Backend {
	client := remote.NewClient(cfg.RemoteURL, cfg.RemoteAPIKey, cfg.RemoteTimeout, logger)
	products := repository.NewRemoteProductRepository(client)
	categories := repository.NewRemoteCategoryRepository(client)
	authorizer := service.NewForwardingAuthorizer(remote.WithAccessToken)

	logger.Info("using remote backend", zap.String("url", cfg.RemoteURL))
	return &Backend{
		Catalog: service.NewCatalogService(logger, products, categories, authorizer),
		Auth:    service.NewAuthService(logger, client),
	}
}

func buildPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) (*Backend, error) {
	applied, err := db.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if applied {
		logger.Info("migrations applied")
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	b := &Backend{closers: []func(){pool.Close}}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx, pool); err != nil {
		b.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	var revoked service.RevokedTokenStore
	if redisClient != nil {
		revoked = service.NewRedisRevokedTokenStore(redisClient)
	}
	jwtSvc := service.NewJWTServiceWithStore(cfg.JWTSecret, cfg.JWTAccessTTL(), revoked)

	users := repository.NewPgUserRepository(pool)
	local := service.NewLocalAuthenticator(logger, users, jwtSvc)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := local.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			b.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	products := repository.NewPgProductRepository(pool)
	categories := repository.NewPgCategoryRepository(pool)

	logger.Info("using postgres backend")
	b.Catalog = service.NewCatalogService(logger, products, categories, service.NewJWTAuthorizer(jwtSvc))
	b.Auth = service.NewAuthService(logger, local)
	b.Local = local
	return b, nil
}
