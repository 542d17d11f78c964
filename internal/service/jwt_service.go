package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"catalog-admin/internal/domain"
)

// JWTService emite y valida los tokens de acceso del backend local.
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	revoked   RevokedTokenStore
}

type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
	ErrJWTRevoked = errors.New("jwt revoked")
)

func NewJWTService(secret string, accessTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &JWTService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    "catalog-admin",
		revoked:   NewMemoryRevokedTokenStore(),
	}
}

func NewJWTServiceWithStore(secret string, accessTTL time.Duration, store RevokedTokenStore) *JWTService {
	svc := NewJWTService(secret, accessTTL)
	if store != nil {
		svc.revoked = store
	}
	return svc
}

// IssueAccessToken arma una sesion con la misma forma que devuelve el proveedor remoto.
func (s *JWTService) IssueAccessToken(user domain.User) (domain.AuthSession, error) {
	if len(s.secret) == 0 {
		return domain.AuthSession{}, ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return domain.AuthSession{}, err
	}
	return domain.AuthSession{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User: domain.User{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (s *JWTService) ParseAccessToken(accessToken string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != "access" || !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(claims.ID)
		if err != nil {
			return Claims{}, err
		}
		if revoked {
			return Claims{}, ErrJWTRevoked
		}
	}
	return claims, nil
}

// RevokeAccessToken invalida el token hasta su vencimiento natural.
// Un token ya vencido no requiere nada.
func (s *JWTService) RevokeAccessToken(accessToken string) error {
	claims, err := s.ParseAccessToken(accessToken)
	if errors.Is(err, ErrJWTExpired) || errors.Is(err, ErrJWTRevoked) {
		return nil
	}
	if err != nil {
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil || s.revoked == nil {
		return ErrJWTInvalid
	}
	return s.revoked.Revoke(claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
