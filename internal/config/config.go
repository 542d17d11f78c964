package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	BackendRemote   = "remote"
	BackendPostgres = "postgres"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string        `env:"HTTP_PORT" envDefault:"8080"`
	Backend             string        `env:"BACKEND" envDefault:"remote"`
	RemoteURL           string        `env:"REMOTE_URL"`
	RemoteAPIKey        string        `env:"REMOTE_API_KEY"`
	RemoteTimeout       time.Duration `env:"REMOTE_TIMEOUT" envDefault:"10s"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	JWTSecret           string        `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int           `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	AdminEmail          string        `env:"ADMIN_EMAIL"`
	AdminPassword       string        `env:"ADMIN_PASSWORD"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"72h"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" envDefault:"0"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate exige las variables que necesita el backend elegido.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendRemote:
		if c.RemoteURL == "" {
			errs = append(errs, errors.New("REMOTE_URL is required when BACKEND=remote"))
		}
		if c.RemoteAPIKey == "" {
			errs = append(errs, errors.New("REMOTE_API_KEY is required when BACKEND=remote"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when BACKEND=postgres"))
		}
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BACKEND %q (want %q or %q)", c.Backend, BackendRemote, BackendPostgres))
	}
	if c.RemoteTimeout <= 0 {
		errs = append(errs, errors.New("REMOTE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// JWTAccessTTL devuelve la vida de los tokens del backend local.
func (c *Config) JWTAccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}
