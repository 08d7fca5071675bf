package repository

import (
	"context"

	"real-preco/internal/model"
)

// ProductRepository defines the interface for catalogue data access operations.
type ProductRepository interface {
	// ListAll retrieves every product in catalogue order (ascending id).
	ListAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// ReplaceAll swaps the stored catalogue for products in one transaction.
	ReplaceAll(ctx context.Context, products []model.Product) error
}

// Schema creates the products table used by the postgres catalogue source.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id             INTEGER PRIMARY KEY CHECK (id > 0),
		name           TEXT NOT NULL CHECK (name <> ''),
		price          NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		original_price NUMERIC(10,2) CHECK (original_price IS NULL OR original_price > price),
		description    TEXT,
		category       TEXT,
		subcategory    TEXT,
		warning        TEXT,
		image_url      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
