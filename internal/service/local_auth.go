package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

const minPasswordLength = 8

// LocalAuthenticator autentica contra la tabla users del backend postgres.
type LocalAuthenticator struct {
	logger *zap.Logger
	users  repository.UserRepository
	jwt    *JWTService
}

func NewLocalAuthenticator(logger *zap.Logger, users repository.UserRepository, jwt *JWTService) *LocalAuthenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalAuthenticator{logger: logger, users: users, jwt: jwt}
}

func (a *LocalAuthenticator) SignInWithPassword(ctx context.Context, email, password string) (domain.AuthSession, error) {
	email = normalizeEmail(email)
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.AuthSession{}, ErrInvalidCredentials
		}
		return domain.AuthSession{}, err
	}
	if user.PasswordHash == "" {
		return domain.AuthSession{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.AuthSession{}, ErrInvalidCredentials
	}
	return a.jwt.IssueAccessToken(user)
}

// SignOut revoca el token hasta su vencimiento.
func (a *LocalAuthenticator) SignOut(_ context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return nil
	}
	return a.jwt.RevokeAccessToken(accessToken)
}

// EnsureAdmin crea el usuario o le reemplaza la password si ya existe.
func (a *LocalAuthenticator) EnsureAdmin(ctx context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("invalid admin email %q", email)
	}
	if len(password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("admin password must have at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	existing, err := a.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := a.users.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			return domain.User{}, fmt.Errorf("update admin password: %w", err)
		}
		existing.PasswordHash = string(hash)
		a.logger.Info("admin password updated", zap.String("email", email))
		return existing, nil
	case errors.Is(err, repository.ErrNotFound):
	default:
		return domain.User{}, fmt.Errorf("lookup admin: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.users.Create(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("create admin: %w", err)
	}
	a.logger.Info("admin user created", zap.String("email", email))
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
