package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"catalog-admin/internal/domain"
)

func TestJWTService_IssueParseAccess(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 15*time.Minute, NewMemoryRevokedTokenStore())
	user := domain.User{
		ID:           "u1",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}

	session, err := svc.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if session.AccessToken == "" || session.TokenType != "bearer" || session.ExpiresIn != 900 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.User.PasswordHash != "" {
		t.Fatalf("session must not carry the password hash")
	}

	claims, err := svc.ParseAccessToken(session.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "admin@example.com" || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RevokeAccessToken(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 15*time.Minute, NewMemoryRevokedTokenStore())
	session, err := svc.IssueAccessToken(domain.User{ID: "u1", Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.RevokeAccessToken(session.AccessToken); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := svc.ParseAccessToken(session.AccessToken); !errors.Is(err, ErrJWTRevoked) {
		t.Fatalf("expected ErrJWTRevoked after logout, got %v", err)
	}
	if err := svc.RevokeAccessToken(session.AccessToken); err != nil {
		t.Fatalf("second revoke should be a no-op, got %v", err)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute)
	if _, err := svc.IssueAccessToken(domain.User{ID: "u1"}); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

func TestJWTService_RejectsWrongIssuerAndExpired(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	now := time.Now().UTC()

	sign := func(issuer string, exp time.Time) string {
		claims := Claims{
			UserID:    "u1",
			Email:     "admin@example.com",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "j1",
				Issuer:    issuer,
				Subject:   "u1",
				IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return signed
	}

	if _, err := svc.ParseAccessToken(sign("other-issuer", now.Add(10*time.Minute))); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}
	expired := sign("catalog-admin", now.Add(-time.Minute))
	if _, err := svc.ParseAccessToken(expired); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
	if err := svc.RevokeAccessToken(expired); err != nil {
		t.Fatalf("revoking an expired token should be a no-op, got %v", err)
	}
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("other-secret", time.Minute)
	session, err := issuer.IssueAccessToken(domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc := NewJWTService("secret", time.Minute)
	if _, err := svc.ParseAccessToken(session.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
