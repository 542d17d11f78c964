package remote

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"catalog-admin/internal/domain"
)

var ErrMissingAccessToken = errors.New("sign-in response has no access token")

// SignInWithPassword autentica contra el endpoint de auth y devuelve la sesion emitida.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (domain.AuthSession, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var session domain.AuthSession
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  "grant_type=password",
		body:   body,
	}, &session)
	if err != nil {
		return domain.AuthSession{}, err
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return domain.AuthSession{}, ErrMissingAccessToken
	}
	return session, nil
}

// SignOut revoca la sesion asociada a accessToken en el proveedor.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return nil
	}
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		token:  accessToken,
	}, nil)
}
