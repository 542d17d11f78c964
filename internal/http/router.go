package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/session"
)

// NewRouter configura el router de Gin con middlewares, templates y rutas.
func NewRouter(
	logger *zap.Logger,
	sessions *session.Manager,
	sessionCfg SessionConfig,
	authH *AuthHandler,
	productH *ProductHandler,
	categoryH *CategoryHandler,
) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(loadTemplates())

	// Middlewares basicos: logging, recovery y sesion.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), SessionMiddleware(logger, sessions, sessionCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", authH.ShowLogin)
	r.POST("/", authH.Login)
	r.POST("/logout", authH.Logout)
	r.GET("/show-products", productH.List)

	admin := r.Group("/", RequireToken())
	admin.GET("/add-product", productH.NewForm)
	admin.POST("/add-product", productH.Create)
	admin.GET("/add-product/:id", productH.EditForm)
	admin.POST("/add-product/:id", productH.Update)
	admin.GET("/products/:id/delete", productH.ConfirmDelete)
	admin.POST("/products/:id/delete", productH.Delete)

	admin.GET("/category", categoryH.Page)
	admin.POST("/category", categoryH.Create)
	admin.POST("/category/:id", categoryH.Update)
	admin.GET("/category/:id/delete", categoryH.ConfirmDelete)
	admin.POST("/category/:id/delete", categoryH.Delete)

	notFound := newView(logger, sessions)
	r.NoRoute(func(c *gin.Context) {
		notFound.HTML(c, http.StatusNotFound, "not_found.html", nil)
	})

	return r
}
