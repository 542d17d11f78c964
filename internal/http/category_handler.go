package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/service"
	"catalog-admin/internal/session"
)

// CategoryHandler maneja la pagina de categorias.
type CategoryHandler struct {
	logger  *zap.Logger
	catalog *service.CatalogService
	view    *view
}

func NewCategoryHandler(logger *zap.Logger, catalog *service.CatalogService, sessions *session.Manager) *CategoryHandler {
	return &CategoryHandler{
		logger:  logger,
		catalog: catalog,
		view:    newView(logger, sessions),
	}
}

type categoryForm struct {
	ID   int64
	Name string
}

// Page maneja GET /category. ?edit=<id> precarga el formulario.
func (h *CategoryHandler) Page(c *gin.Context) {
	var (
		form   categoryForm
		inline []session.Notice
	)
	if raw := c.Query("edit"); raw != "" {
		id, err := parseID(raw)
		if err == nil {
			category, getErr := h.catalog.GetCategory(c.Request.Context(), id)
			if getErr == nil {
				form = categoryForm{ID: category.ID, Name: category.Name}
			}
			err = getErr
		}
		if err != nil {
			inline = append(inline, errorNotice("Error fetching category: "+service.UserMessage(err)))
		}
	}
	h.renderPage(c, http.StatusOK, form, inline...)
}

// Create maneja POST /category.
func (h *CategoryHandler) Create(c *gin.Context) {
	h.save(c, 0)
}

// Update maneja POST /category/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderPage(c, http.StatusNotFound, categoryForm{},
			errorNotice(service.MsgCategorySaveFailed+err.Error()))
		return
	}
	h.save(c, id)
}

func (h *CategoryHandler) save(c *gin.Context, id int64) {
	name := c.PostForm("category_name")
	token := ""
	if s := GetSession(c); s != nil {
		token = s.Token()
	}
	if _, err := h.catalog.SaveCategory(c.Request.Context(), token, id, name); err != nil {
		status, message := saveFailure(err, service.MsgCategorySaveFailed)
		h.logger.Warn("save category rejected", zap.Int64("category_id", id), zap.Error(err))
		h.renderPage(c, status, categoryForm{ID: id, Name: name}, errorNotice(message))
		return
	}

	if id == 0 {
		h.view.Flash(c, session.NoticeSuccess, service.MsgCategoryCreated)
	} else {
		h.view.Flash(c, session.NoticeSuccess, service.MsgCategoryUpdated)
	}
	h.view.Redirect(c, "/category")
}

// ConfirmDelete maneja GET /category/:id/delete.
func (h *CategoryHandler) ConfirmDelete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.view.Flash(c, session.NoticeError, err.Error())
		h.view.Redirect(c, "/category")
		return
	}
	h.view.HTML(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":     service.MsgDeleteConfirmTitle,
		"Text":      service.MsgDeleteConfirmText,
		"Subject":   fmt.Sprintf("Category #%d", id),
		"Action":    fmt.Sprintf("/category/%d/delete", id),
		"CancelURL": "/category",
	})
}

// Delete maneja POST /category/:id/delete. Sin confirm=yes no se borra nada.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if c.PostForm("confirm") != "yes" {
		h.view.Redirect(c, "/category")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.view.Flash(c, session.NoticeError, err.Error())
		h.view.Redirect(c, "/category")
		return
	}

	token := ""
	if s := GetSession(c); s != nil {
		token = s.Token()
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), token, id); err != nil {
		h.view.Flash(c, session.NoticeError, service.UserMessage(err))
		h.view.Redirect(c, "/category")
		return
	}
	h.view.Flash(c, session.NoticeSuccess, service.MsgCategoryDeleted)
	h.view.Redirect(c, "/category")
}

func (h *CategoryHandler) renderPage(c *gin.Context, status int, form categoryForm, inline ...session.Notice) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		inline = append(inline, errorNotice(service.MsgCategoriesFailed))
	}
	action := "/category"
	if form.ID > 0 {
		action = fmt.Sprintf("/category/%d", form.ID)
	}
	h.view.HTML(c, status, "categories.html", gin.H{
		"Categories": categories,
		"Form":       form,
		"IsUpdate":   form.ID > 0,
		"Action":     action,
	}, inline...)
}
