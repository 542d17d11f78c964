package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/session"
)

const (
	sessionCookieName = "catalog_session"
	sessionKey        = "catalog_session"
	sessionCookieKey  = "catalog_session_cookie"
)

// SessionConfig controla la cookie que transporta el id de sesion.
type SessionConfig struct {
	Secure bool
}

type sessionCookie struct {
	secure bool
	maxAge int
}

// writeSessionCookie emite la cookie de sesion con Max-Age completo.
// Reemplaza una cookie de sesion ya agregada en esta misma respuesta.
func writeSessionCookie(c *gin.Context, s *session.Session) {
	val, ok := c.Get(sessionCookieKey)
	if !ok || s == nil {
		return
	}
	sc := val.(sessionCookie)

	header := c.Writer.Header()
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, sessionCookieName+"=") {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, s.ID(), sc.maxAge, "/", "", sc.secure, true)
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("request", fields...)
	}
}

// SessionMiddleware carga la sesion una vez por request y la deja en el contexto.
// Si el store falla la request sigue con una sesion anonima.
func SessionMiddleware(logger *zap.Logger, sessions *session.Manager, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookieName)
		s, err := sessions.Load(c.Request.Context(), id)
		if err != nil {
			logger.Error("load session failed", zap.Error(err))
			s = sessions.New()
		}
		c.Set(sessionCookieKey, sessionCookie{secure: cfg.Secure, maxAge: int(sessions.TTL().Seconds())})
		c.Set(sessionKey, s)
		if s.IsNew() {
			writeSessionCookie(c, s)
		}
		c.Next()
	}
}

// GetSession obtiene la sesion cargada por SessionMiddleware.
func GetSession(c *gin.Context) *session.Session {
	val, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := val.(*session.Session)
	return s
}

// RequireToken deja pasar solo sesiones con token; el resto va a /show-products.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if s != nil && s.HasToken() {
			c.Next()
			return
		}
		status := http.StatusFound
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			status = http.StatusSeeOther
		}
		c.Redirect(status, "/show-products")
		c.Abort()
	}
}
