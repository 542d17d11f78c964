package domain

import "github.com/shopspring/decimal"

// Product es una fila de la tabla "Product" del servicio de datos.
type Product struct {
	ID         int64           `json:"id"`
	Title      string          `json:"Title"`
	Price      decimal.Decimal `json:"Price"`
	CategoryID int64           `json:"product_category_id"`
}

// Category es una fila de la tabla product_categories.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"category_name"`
}
