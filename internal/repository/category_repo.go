package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/remote"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (domain.Category, error)
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	Update(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryWrite struct {
	Name string `json:"category_name"`
}

type RemoteCategoryRepository struct {
	client *remote.Client
}

func NewRemoteCategoryRepository(client *remote.Client) *RemoteCategoryRepository {
	return &RemoteCategoryRepository{client: client}
}

func (r *RemoteCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.client.From(CategoryTable).Select("id, category_name").Order("id", true).Execute(ctx, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *RemoteCategoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	var category domain.Category
	err := r.client.From(CategoryTable).Select("id, category_name").Eq("id", id).Single().Execute(ctx, &category)
	if err != nil {
		if remote.IsNotFound(err) {
			return domain.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return domain.Category{}, err
	}
	return category, nil
}

func (r *RemoteCategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	var created []domain.Category
	rows := []categoryWrite{{Name: category.Name}}
	if err := r.client.From(CategoryTable).Insert(rows).Execute(ctx, &created); err != nil {
		return domain.Category{}, err
	}
	if len(created) == 0 {
		return category, nil
	}
	return created[0], nil
}

func (r *RemoteCategoryRepository) Update(ctx context.Context, category domain.Category) error {
	var updated []rowID
	err := r.client.From(CategoryTable).
		Update(categoryWrite{Name: category.Name}).
		Eq("id", category.ID).
		Execute(ctx, &updated)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("category %d: %w", category.ID, ErrNotFound)
	}
	return nil
}

func (r *RemoteCategoryRepository) Delete(ctx context.Context, id int64) error {
	var deleted []rowID
	if err := r.client.From(CategoryTable).Delete().Eq("id", id).Execute(ctx, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}

type PgCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgCategoryRepository(pool *pgxpool.Pool) *PgCategoryRepository {
	return &PgCategoryRepository{pool: pool}
}

func (r *PgCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, category_name FROM product_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PgCategoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, category_name FROM product_categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *PgCategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO product_categories (category_name) VALUES ($1) RETURNING id`,
		category.Name,
	).Scan(&category.ID)
	return category, err
}

func (r *PgCategoryRepository) Update(ctx context.Context, category domain.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE product_categories SET category_name = $2 WHERE id = $1`,
		category.ID, category.Name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", category.ID, ErrNotFound)
	}
	return nil
}

func (r *PgCategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}
