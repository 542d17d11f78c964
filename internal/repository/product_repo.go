package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/remote"
)

// ErrNotFound indica que la fila pedida no existe.
var ErrNotFound = errors.New("not found")

const (
	ProductTable  = "Product"
	CategoryTable = "product_categories"
)

// ProductRepository define el contrato de persistencia para productos.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type productWrite struct {
	Title      string      `json:"Title"`
	Price      json.Number `json:"Price"`
	CategoryID int64       `json:"product_category_id"`
}

// rowID recibe la representacion de un PATCH/DELETE; solo importa cuantas filas vuelven.
type rowID struct {
	ID int64 `json:"id"`
}

func toProductWrite(p domain.Product) productWrite {
	return productWrite{
		Title:      p.Title,
		Price:      json.Number(p.Price.String()),
		CategoryID: p.CategoryID,
	}
}

// RemoteProductRepository implementa ProductRepository sobre el servicio de datos remoto.
type RemoteProductRepository struct {
	client *remote.Client
}

func NewRemoteProductRepository(client *remote.Client) *RemoteProductRepository {
	return &RemoteProductRepository{client: client}
}

func (r *RemoteProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.client.From(ProductTable).Select("*").Order("id", true).Execute(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RemoteProductRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := r.client.From(ProductTable).Select("*").Eq("id", id).Single().Execute(ctx, &product)
	if err != nil {
		if remote.IsNotFound(err) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return domain.Product{}, err
	}
	return product, nil
}

func (r *RemoteProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	var created []domain.Product
	rows := []productWrite{toProductWrite(product)}
	if err := r.client.From(ProductTable).Insert(rows).Execute(ctx, &created); err != nil {
		return domain.Product{}, err
	}
	if len(created) == 0 {
		return product, nil
	}
	return created[0], nil
}

// Update devuelve ErrNotFound si el filtro no toco ninguna fila.
func (r *RemoteProductRepository) Update(ctx context.Context, product domain.Product) error {
	var updated []rowID
	err := r.client.From(ProductTable).Update(toProductWrite(product)).Eq("id", product.ID).Execute(ctx, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

func (r *RemoteProductRepository) Delete(ctx context.Context, id int64) error {
	var deleted []rowID
	if err := r.client.From(ProductTable).Delete().Eq("id", id).Execute(ctx, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// PgProductRepository implementa ProductRepository usando pgxpool.
type PgProductRepository struct {
	pool *pgxpool.Pool
}

func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

func (r *PgProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
		SELECT id, "Title", "Price", product_category_id
		FROM "Product"
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PgProductRepository) GetByID(ctx context.Context, id int64) (domain.Product, error) {
	const query = `
		SELECT id, "Title", "Price", product_category_id
		FROM "Product"
		WHERE id = $1
	`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *PgProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	const query = `
		INSERT INTO "Product" ("Title", "Price", product_category_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		product.Title,
		product.Price,
		nullableID(product.CategoryID),
	).Scan(&product.ID)
	return product, err
}

func (r *PgProductRepository) Update(ctx context.Context, product domain.Product) error {
	const query = `
		UPDATE "Product"
		SET "Title" = $2, "Price" = $3, product_category_id = $4
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Price,
		nullableID(product.CategoryID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

func (r *PgProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM "Product" WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p          domain.Product
		categoryID *int64
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &categoryID); err != nil {
		return domain.Product{}, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return p, nil
}

func nullableID(id int64) interface{} {
	if id <= 0 {
		return nil
	}
	return id
}
