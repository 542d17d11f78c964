package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/service"
	"catalog-admin/internal/session"
)

// AuthHandler maneja el login y el logout.
type AuthHandler struct {
	logger   *zap.Logger
	auth     *service.AuthService
	sessions *session.Manager
	view     *view
}

func NewAuthHandler(logger *zap.Logger, auth *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		auth:     auth,
		sessions: sessions,
		view:     newView(logger, sessions),
	}
}

// ShowLogin maneja GET /.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "login.html", gin.H{"FormEmail": ""})
}

// Login maneja POST /. Si falla se vuelve a mostrar el email pero no la password.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	authSession, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, service.ErrCredentialsRequired) {
			status = http.StatusUnprocessableEntity
		}
		h.view.HTML(c, status, "login.html", gin.H{"FormEmail": email},
			errorNotice(service.MsgLoginFailed+service.UserMessage(err)))
		return
	}

	s := GetSession(c)
	if err := h.sessions.SetToken(c.Request.Context(), s, authSession.AccessToken, email); err != nil {
		h.logger.Error("store session token failed", zap.Error(err))
		h.view.HTML(c, http.StatusInternalServerError, "login.html", gin.H{"FormEmail": email},
			errorNotice(service.MsgLoginFailed+"could not store the session"))
		return
	}
	h.view.Flash(c, session.NoticeSuccess, service.MsgLoginSuccess)
	h.view.Redirect(c, "/add-product")
}

// Logout maneja POST /logout. El token local se borra aunque el proveedor falle.
func (h *AuthHandler) Logout(c *gin.Context) {
	s := GetSession(c)
	if s == nil {
		h.view.Redirect(c, "/show-products")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), s.Token()); err != nil {
		// AuthService ya lo registro como warning; el token local se borra igual.
		h.logger.Debug("continuing logout after provider error", zap.Error(err))
	}
	if err := h.sessions.Clear(c.Request.Context(), s); err != nil {
		h.logger.Error("clear session failed", zap.Error(err))
	}
	h.view.Flash(c, session.NoticeInfo, service.MsgLoggedOut)
	h.view.Redirect(c, "/show-products")
}
