package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized indica que la operacion requiere una sesion valida.
var ErrUnauthorized = errors.New("you must be logged in to do that")

// Authorizer valida el token de la sesion antes de una escritura y devuelve
// el contexto con el que debe llamarse al repositorio.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (context.Context, error)
}

// ForwardingAuthorizer no verifica el token: lo adjunta al contexto para que
// el servicio remoto aplique sus propias politicas.
type ForwardingAuthorizer struct {
	attach func(ctx context.Context, token string) context.Context
}

func NewForwardingAuthorizer(attach func(ctx context.Context, token string) context.Context) *ForwardingAuthorizer {
	return &ForwardingAuthorizer{attach: attach}
}

func (a *ForwardingAuthorizer) Authorize(ctx context.Context, accessToken string) (context.Context, error) {
	token := strings.TrimSpace(accessToken)
	if token == "" {
		return ctx, ErrUnauthorized
	}
	if a.attach == nil {
		return ctx, nil
	}
	return a.attach(ctx, token), nil
}

// JWTAuthorizer verifica la firma del token emitido por el backend local.
type JWTAuthorizer struct {
	jwt *JWTService
}

func NewJWTAuthorizer(jwt *JWTService) *JWTAuthorizer {
	return &JWTAuthorizer{jwt: jwt}
}

func (a *JWTAuthorizer) Authorize(ctx context.Context, accessToken string) (context.Context, error) {
	if a.jwt == nil {
		return ctx, ErrUnauthorized
	}
	if _, err := a.jwt.ParseAccessToken(accessToken); err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return ctx, nil
}
