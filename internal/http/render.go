package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// view renderiza paginas con los datos comunes del layout y maneja los avisos.
type view struct {
	logger   *zap.Logger
	sessions *session.Manager
}

func newView(logger *zap.Logger, sessions *session.Manager) *view {
	return &view{logger: logger, sessions: sessions}
}

// HTML agrega LoggedIn, Email y Notices a data. Los avisos pendientes de la
// sesion se consumen aca; inline se muestra solo en esta respuesta.
func (v *view) HTML(c *gin.Context, status int, name string, data gin.H, inline ...session.Notice) {
	if data == nil {
		data = gin.H{}
	}
	s := GetSession(c)
	var notices []session.Notice
	if s != nil {
		popped, err := v.sessions.PopNotices(c.Request.Context(), s)
		if err != nil {
			v.logger.Warn("pop notices failed", zap.Error(err))
		}
		notices = append(notices, popped...)
		data["LoggedIn"] = s.HasToken()
		data["Email"] = s.Email()
	} else {
		data["LoggedIn"] = false
		data["Email"] = ""
	}
	data["Notices"] = append(notices, inline...)
	v.refreshCookie(c, s)
	c.HTML(status, name, data)
}

// Flash encola un aviso para la proxima pagina renderizada.
func (v *view) Flash(c *gin.Context, kind, message string) {
	s := GetSession(c)
	if s == nil {
		return
	}
	if err := v.sessions.AddNotice(c.Request.Context(), s, kind, message); err != nil {
		v.logger.Warn("queue notice failed", zap.String("notice", message), zap.Error(err))
	}
}

// Redirect aplica POST/redirect/GET.
func (v *view) Redirect(c *gin.Context, location string) {
	v.refreshCookie(c, GetSession(c))
	c.Redirect(http.StatusSeeOther, location)
}

// refreshCookie reenvia la cookie cuando la sesion se guardo en esta request,
// asi su vencimiento sigue al TTL del store y al id rotado.
func (v *view) refreshCookie(c *gin.Context, s *session.Session) {
	if s != nil && s.Saved() {
		writeSessionCookie(c, s)
	}
}

func errorNotice(message string) session.Notice {
	return session.Notice{Kind: session.NoticeError, Message: message}
}
