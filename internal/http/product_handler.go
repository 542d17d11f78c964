package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"
	"catalog-admin/internal/session"
)

// ProductHandler maneja el listado y el formulario de productos.
type ProductHandler struct {
	logger  *zap.Logger
	catalog *service.CatalogService
	view    *view
}

func NewProductHandler(logger *zap.Logger, catalog *service.CatalogService, sessions *session.Manager) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		catalog: catalog,
		view:    newView(logger, sessions),
	}
}

type productForm struct {
	Title      string
	Price      string
	CategoryID string
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

func categoryOptions(categories []domain.Category, selected string) []categoryOption {
	options := make([]categoryOption, 0, len(categories))
	for _, c := range categories {
		value := strconv.FormatInt(c.ID, 10)
		options = append(options, categoryOption{
			Value:    value,
			Label:    c.Name,
			Selected: value == selected,
		})
	}
	return options
}

func formFromProduct(p domain.Product) productForm {
	form := productForm{Title: p.Title, Price: p.Price.String()}
	if p.CategoryID > 0 {
		form.CategoryID = strconv.FormatInt(p.CategoryID, 10)
	}
	return form
}

// List maneja GET /show-products.
func (h *ProductHandler) List(c *gin.Context) {
	var inline []session.Notice
	rows, err := h.catalog.ListProductRows(c.Request.Context())
	if err != nil {
		inline = append(inline, errorNotice("Error fetching products: "+service.UserMessage(err)))
		rows = nil
	}
	h.view.HTML(c, http.StatusOK, "products.html", gin.H{
		"Rows":         rows,
		"EmptyMessage": service.MsgProductsEmpty,
	}, inline...)
}

// NewForm maneja GET /add-product.
func (h *ProductHandler) NewForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, 0, productForm{})
}

// EditForm maneja GET /add-product/:id.
func (h *ProductHandler) EditForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderForm(c, http.StatusNotFound, -1, productForm{},
			errorNotice(service.MsgProductFetchFailed+err.Error()))
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.renderForm(c, status, id, productForm{},
			errorNotice(service.MsgProductFetchFailed+service.UserMessage(err)))
		return
	}
	h.renderForm(c, http.StatusOK, id, formFromProduct(product))
}

// Create maneja POST /add-product.
func (h *ProductHandler) Create(c *gin.Context) {
	h.save(c, 0)
}

// Update maneja POST /add-product/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderForm(c, http.StatusNotFound, -1, productForm{},
			errorNotice(service.MsgProductSaveFailed+err.Error()))
		return
	}
	h.save(c, id)
}

func (h *ProductHandler) save(c *gin.Context, id int64) {
	form := productForm{
		Title:      c.PostForm("title"),
		Price:      c.PostForm("price"),
		CategoryID: c.PostForm("product_category_id"),
	}
	input := service.ProductInput{
		Title:      form.Title,
		Price:      form.Price,
		CategoryID: form.CategoryID,
	}

	token := ""
	if s := GetSession(c); s != nil {
		token = s.Token()
	}
	_, err := h.catalog.SaveProduct(c.Request.Context(), token, id, input)
	if err != nil {
		status, message := saveFailure(err, service.MsgProductSaveFailed)
		h.logger.Warn("save product rejected", zap.Int64("product_id", id), zap.Error(err))
		h.renderForm(c, status, id, form, errorNotice(message))
		return
	}

	if id == 0 {
		h.view.Flash(c, session.NoticeSuccess, service.MsgProductAdded)
		h.view.Redirect(c, "/add-product")
		return
	}
	h.view.Flash(c, session.NoticeSuccess, service.MsgProductUpdated)
	h.view.Redirect(c, "/show-products")
}

// ConfirmDelete maneja GET /products/:id/delete.
func (h *ProductHandler) ConfirmDelete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.view.Flash(c, session.NoticeError, service.MsgProductDelFailed+err.Error())
		h.view.Redirect(c, "/show-products")
		return
	}
	h.view.HTML(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":     service.MsgDeleteConfirmTitle,
		"Text":      service.MsgDeleteConfirmText,
		"Subject":   fmt.Sprintf("Product #%d", id),
		"Action":    fmt.Sprintf("/products/%d/delete", id),
		"CancelURL": "/show-products",
	})
}

// Delete maneja POST /products/:id/delete. Sin confirm=yes no se borra nada.
func (h *ProductHandler) Delete(c *gin.Context) {
	if c.PostForm("confirm") != "yes" {
		h.view.Redirect(c, "/show-products")
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.view.Flash(c, session.NoticeError, service.MsgProductDelFailed+err.Error())
		h.view.Redirect(c, "/show-products")
		return
	}

	token := ""
	if s := GetSession(c); s != nil {
		token = s.Token()
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), token, id); err != nil {
		h.view.Flash(c, session.NoticeError, service.MsgProductDelFailed+service.UserMessage(err))
		h.view.Redirect(c, "/show-products")
		return
	}
	h.view.Flash(c, session.NoticeSuccess, service.MsgProductDeleted)
	h.view.Redirect(c, "/show-products")
}

// renderForm muestra el formulario; id 0 es alta, cualquier otro valor es edicion.
func (h *ProductHandler) renderForm(c *gin.Context, status int, id int64, form productForm, inline ...session.Notice) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		inline = append(inline, errorNotice(service.MsgCategoriesFailed))
	}
	action := "/add-product"
	switch {
	case id > 0:
		action = fmt.Sprintf("/add-product/%d", id)
	case id < 0:
		action = c.Request.URL.Path
	}
	h.view.HTML(c, status, "product_form.html", gin.H{
		"IsUpdate": id != 0,
		"Action":   action,
		"Form":     form,
		"Options":  categoryOptions(categories, form.CategoryID),
	}, inline...)
}

var errInvalidID = errors.New("invalid id")

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// saveFailure decide el status y el texto del aviso de un guardado fallido.
func saveFailure(err error, prefix string) (int, string) {
	switch {
	case errors.Is(err, service.ErrCategoryRequired),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrCategoryNameRequired):
		return http.StatusUnprocessableEntity, service.UserMessage(err)
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, prefix + service.UserMessage(err)
	default:
		return http.StatusBadGateway, prefix + service.UserMessage(err)
	}
}
