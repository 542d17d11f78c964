package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"
)

var (
	ErrCategoryRequired     = errors.New("category is required")
	ErrInvalidPrice         = errors.New("price must be a positive number")
	ErrTitleRequired        = errors.New("title is required")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrNotFound             = repository.ErrNotFound
)

// CatalogService coordina lecturas y escrituras de productos y categorias.
type CatalogService struct {
	logger     *zap.Logger
	products   repository.ProductRepository
	categories repository.CategoryRepository
	authorizer Authorizer
}

func NewCatalogService(logger *zap.Logger, products repository.ProductRepository, categories repository.CategoryRepository, authorizer Authorizer) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if authorizer == nil {
		authorizer = NewForwardingAuthorizer(nil)
	}
	return &CatalogService{
		logger:     logger,
		products:   products,
		categories: categories,
		authorizer: authorizer,
	}
}

// ProductRow es la proyeccion que muestra la tabla de productos.
type ProductRow struct {
	ID           int64
	Title        string
	Price        decimal.Decimal
	CategoryName string
}

// ProductInput son los valores crudos del formulario de producto.
type ProductInput struct {
	Title      string
	Price      string
	CategoryID string
}

// JoinCategoryNames resuelve el nombre de categoria de cada producto.
// Una categoria inexistente deja el nombre vacio.
func JoinCategoryNames(products []domain.Product, categories []domain.Category) []ProductRow {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{
			ID:           p.ID,
			Title:        p.Title,
			Price:        p.Price,
			CategoryName: names[p.CategoryID],
		})
	}
	return rows
}

// ListProductRows lee todos los productos y todas las categorias.
// Si falla solo la lectura de categorias los nombres quedan vacios.
func (s *CatalogService) ListProductRows(ctx context.Context) ([]ProductRow, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Warn("list categories failed, category names left blank", zap.Error(err))
		categories = nil
	}
	return JoinCategoryNames(products, categories), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("get product failed", zap.Int64("product_id", id), zap.Error(err))
		return domain.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("get category failed", zap.Int64("category_id", id), zap.Error(err))
		return domain.Category{}, err
	}
	return category, nil
}

// ParseProductInput valida el formulario en orden: categoria, precio, titulo.
func ParseProductInput(input ProductInput) (domain.Product, error) {
	categoryID, err := strconv.ParseInt(strings.TrimSpace(input.CategoryID), 10, 64)
	if err != nil || categoryID <= 0 {
		return domain.Product{}, ErrCategoryRequired
	}
	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || !price.IsPositive() {
		return domain.Product{}, ErrInvalidPrice
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Product{}, ErrTitleRequired
	}
	return domain.Product{
		Title:      title,
		Price:      price,
		CategoryID: categoryID,
	}, nil
}

// SaveProduct crea el producto cuando id es 0 y lo actualiza en otro caso.
// Un formulario invalido no llega al repositorio.
func (s *CatalogService) SaveProduct(ctx context.Context, accessToken string, id int64, input ProductInput) (domain.Product, error) {
	product, err := ParseProductInput(input)
	if err != nil {
		return domain.Product{}, err
	}
	ctx, err = s.authorizer.Authorize(ctx, accessToken)
	if err != nil {
		return domain.Product{}, err
	}

	if id == 0 {
		created, err := s.products.Create(ctx, product)
		if err != nil {
			s.logger.Error("create product failed", zap.String("title", product.Title), zap.Error(err))
			return domain.Product{}, err
		}
		s.logger.Info("product created", zap.Int64("product_id", created.ID))
		return created, nil
	}

	product.ID = id
	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("update product failed", zap.Int64("product_id", id), zap.Error(err))
		return domain.Product{}, err
	}
	s.logger.Info("product updated", zap.Int64("product_id", id))
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, accessToken string, id int64) error {
	ctx, err := s.authorizer.Authorize(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error("delete product failed", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// SaveCategory crea la categoria cuando id es 0 y la renombra en otro caso.
func (s *CatalogService) SaveCategory(ctx context.Context, accessToken string, id int64, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrCategoryNameRequired
	}
	ctx, err := s.authorizer.Authorize(ctx, accessToken)
	if err != nil {
		return domain.Category{}, err
	}

	category := domain.Category{ID: id, Name: name}
	if id == 0 {
		created, err := s.categories.Create(ctx, category)
		if err != nil {
			s.logger.Error("create category failed", zap.String("name", name), zap.Error(err))
			return domain.Category{}, err
		}
		s.logger.Info("category created", zap.Int64("category_id", created.ID))
		return created, nil
	}

	if err := s.categories.Update(ctx, category); err != nil {
		s.logger.Error("update category failed", zap.Int64("category_id", id), zap.Error(err))
		return domain.Category{}, err
	}
	s.logger.Info("category updated", zap.Int64("category_id", id))
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, accessToken string, id int64) error {
	ctx, err := s.authorizer.Authorize(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		s.logger.Error("delete category failed", zap.Int64("category_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("category deleted", zap.Int64("category_id", id))
	return nil
}
