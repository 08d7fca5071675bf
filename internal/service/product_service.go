package service

import (
	"context"

	"real-preco/internal/catalog"
	"real-preco/internal/model"

	"github.com/rs/zerolog"
)

// productService implements ProductService over the in-memory catalogue.
type productService struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(cat *catalog.Catalog, logger zerolog.Logger) ProductService {
	return &productService{
		catalog: cat,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) Search(ctx context.Context, term string) []model.ProductGroup {
	products := s.catalog.Search(term)
	s.logger.Debug().Str("term", term).Int("count", len(products)).Msg("catalogue searched")
	return catalog.GroupByCategory(products)
}

func (s *productService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	p, ok := s.catalog.ByID(id)
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &p, nil
}

func (s *productService) Deals(ctx context.Context) []model.Product {
	deals := s.catalog.Deals()
	if deals == nil {
		return []model.Product{}
	}
	return deals
}

func (s *productService) Categories(ctx context.Context) []string {
	categories := s.catalog.Categories()
	if categories == nil {
		return []string{}
	}
	return categories
}

func (s *productService) Category(ctx context.Context, name string) (*model.CategoryView, error) {
	view, ok := s.catalog.Category(name)
	if !ok {
		s.logger.Debug().Str("category", name).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}
	return &view, nil
}
