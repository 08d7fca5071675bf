package repository

import (
	"context"
	"errors"
	"fmt"

	"real-preco/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const productColumns = `
	id, name, price::text, original_price::text,
	COALESCE(description, ''), COALESCE(category, ''), COALESCE(subcategory, ''),
	COALESCE(warning, ''), COALESCE(image_url, '')
`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// ListAll retrieves every product ordered by id.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	r.logger.Debug().Int("count", len(products)).Msg("products loaded")
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// ReplaceAll deletes the stored catalogue and inserts products in a single
// transaction, so readers never observe a partial catalogue.
func (r *productRepository) ReplaceAll(ctx context.Context, products []model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error().Err(err).Msg("failed to rollback transaction")
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	query := `
		INSERT INTO products (id, name, price, original_price, description, category, subcategory, warning, image_url)
		VALUES ($1, $2, $3::numeric, $4::numeric, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		var original *string
		if p.OriginalPrice != nil {
			s := p.OriginalPrice.String()
			original = &s
		}
		batch.Queue(query, p.ID, p.Name, p.Price.String(), original,
			p.Description, p.Category, p.Subcategory, p.Warning, p.ImageURL)
	}

	results := tx.SendBatch(ctx, batch)
	for _, p := range products {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			r.logger.Error().Err(err).Int("product_id", p.ID).Msg("failed to insert product")
			return fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info().Int("count", len(products)).Msg("catalogue replaced")
	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p        model.Product
		price    string
		original *string
	)
	err := row.Scan(&p.ID, &p.Name, &price, &original,
		&p.Description, &p.Category, &p.Subcategory, &p.Warning, &p.ImageURL)
	if err != nil {
		return model.Product{}, err
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q: %w", price, err)
	}
	if original != nil {
		op, err := decimal.NewFromString(*original)
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid original price %q: %w", *original, err)
		}
		p.OriginalPrice = &op
	}

	return p, nil
}
