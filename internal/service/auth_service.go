package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"catalog-admin/internal/domain"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Authenticator es el proveedor de login por password.
// Lo implementan el cliente remoto y LocalAuthenticator.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (domain.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthService valida credenciales y delega en el Authenticator configurado.
type AuthService struct {
	logger *zap.Logger
	auth   Authenticator
}

func NewAuthService(logger *zap.Logger, auth Authenticator) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{logger: logger, auth: auth}
}

// Login devuelve la sesion del proveedor; cada intento es independiente.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.AuthSession{}, ErrCredentialsRequired
	}
	session, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return domain.AuthSession{}, err
	}
	if session.AccessToken == "" {
		return domain.AuthSession{}, ErrInvalidCredentials
	}
	s.logger.Info("login succeeded", zap.String("email", email))
	return session, nil
}

// Logout cierra la sesion en el proveedor. El llamador limpia el token local
// aunque esto falle.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return nil
	}
	if err := s.auth.SignOut(ctx, accessToken); err != nil {
		s.logger.Warn("remote sign out failed", zap.Error(err))
		return err
	}
	return nil
}
