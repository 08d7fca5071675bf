package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"real-preco/internal/config"
	"real-preco/internal/database"
	"real-preco/internal/model"
	"real-preco/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// generateSampleCatalog writes the sample catalogue used in development and,
// with -seed, replaces the products table of the configured database with it.
//
//	go run scripts/generate_sample_catalog.go -out data/catalog.json
//	go run scripts/generate_sample_catalog.go -out data/catalog.json.gz
//	DB_PASSWORD=postgres go run scripts/generate_sample_catalog.go -seed
func main() {
	out := flag.String("out", "data/catalog.json", "output file; a .gz suffix writes gzip")
	seed := flag.Bool("seed", false, "replace the products table using DB_* settings")
	flag.Parse()

	products := sampleCatalog()

	if err := writeCatalog(*out, products); err != nil {
		log.Fatalf("Failed to write catalogue: %v", err)
	}
	fmt.Printf("Created %s with %d products\n", *out, len(products))

	if *seed {
		if err := seedDatabase(products); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		fmt.Printf("Seeded products table with %d products\n", len(products))
	}
}

func writeCatalog(path string, products []model.Product) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	return nil
}

func seedDatabase(products []model.Product) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Logger).Level(zerolog.WarnLevel)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, repository.Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	repo := repository.NewProductRepository(pool, logger)
	if err := repo.ReplaceAll(ctx, products); err != nil {
		return err
	}

	// Read every product back to confirm the write round-trips.
	for _, want := range products {
		got, err := repo.GetByID(ctx, want.ID)
		if err != nil {
			return fmt.Errorf("failed to verify product %d: %w", want.ID, err)
		}
		if got == nil {
			return fmt.Errorf("product %d missing after seeding", want.ID)
		}
		if got.Name != want.Name || !got.Price.Equal(want.Price) {
			return fmt.Errorf("product %d does not match after seeding", want.ID)
		}
	}

	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func was(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleCatalog() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Arroz Branco Tipo 1 5kg", Price: price("24.90"), Description: "Arroz agulhinha tipo 1", Category: "Mercearia", Subcategory: "Grãos"},
		{ID: 2, Name: "Feijão Carioca 1kg", Price: price("8.49"), Description: "Feijão carioca selecionado", Category: "Mercearia", Subcategory: "Grãos"},
		{ID: 3, Name: "Macarrão Espaguete 500g", Price: price("4.29"), Description: "Massa de sêmola", Category: "Mercearia", Subcategory: "Massas"},
		{ID: 4, Name: "Óleo de Soja 900ml", Price: price("6.99"), OriginalPrice: was("8.99"), Description: "Óleo de soja refinado", Category: "Mercearia", Subcategory: "Óleos"},
		{ID: 5, Name: "Café Torrado e Moído 500g", Price: price("17.90"), Description: "Café tradicional", Category: "Mercearia", Subcategory: "Matinais"},
		{ID: 6, Name: "Açúcar Refinado 1kg", Price: price("4.79"), Description: "Açúcar refinado especial", Category: "Mercearia"},
		{ID: 7, Name: "Leite Integral 1L", Price: price("4.99"), Description: "Leite UHT integral", Category: "Laticínios", Subcategory: "Leites"},
		{ID: 8, Name: "Queijo Mussarela Fatiado 200g", Price: price("11.90"), OriginalPrice: was("14.50"), Description: "Mussarela fatiada", Category: "Laticínios", Subcategory: "Queijos"},
		{ID: 9, Name: "Iogurte Natural 170g", Price: price("3.49"), Description: "Iogurte natural integral", Category: "Laticínios", Subcategory: "Iogurtes"},
		{ID: 10, Name: "Manteiga com Sal 200g", Price: price("12.90"), Description: "Manteiga extra com sal", Category: "Laticínios"},
		{ID: 11, Name: "Picanha Bovina kg", Price: price("69.90"), OriginalPrice: was("89.90"), Description: "Picanha resfriada", Category: "Açougue", Subcategory: "Bovinos", Warning: "Produto vendido por peso"},
		{ID: 12, Name: "Peito de Frango kg", Price: price("19.90"), Description: "Filé de peito de frango", Category: "Açougue", Subcategory: "Aves", Warning: "Produto vendido por peso"},
		{ID: 13, Name: "Banana Prata kg", Price: price("5.99"), Description: "Banana prata fresca", Category: "Hortifruti", Subcategory: "Frutas"},
		{ID: 14, Name: "Tomate kg", Price: price("7.49"), OriginalPrice: was("9.90"), Description: "Tomate italiano", Category: "Hortifruti", Subcategory: "Legumes"},
		{ID: 15, Name: "Alface Crespa", Price: price("2.99"), Description: "Pé de alface crespa", Category: "Hortifruti", Subcategory: "Verduras"},
		{ID: 16, Name: "Refrigerante Cola 2L", Price: price("9.99"), Description: "Refrigerante sabor cola", Category: "Bebidas", Subcategory: "Refrigerantes"},
		{ID: 17, Name: "Cerveja Pilsen Lata 350ml", Price: price("3.79"), Description: "Cerveja pilsen", Category: "Bebidas", Subcategory: "Cervejas", Warning: "Venda proibida para menores de 18 anos"},
		{ID: 18, Name: "Água Mineral 1,5L", Price: price("2.49"), Description: "Água mineral sem gás", Category: "Bebidas"},
		{ID: 19, Name: "Detergente Líquido 500ml", Price: price("2.89"), Description: "Detergente neutro", Category: "Limpeza"},
		{ID: 20, Name: "Sabão em Pó 1,6kg", Price: price("21.90"), OriginalPrice: was("26.90"), Description: "Sabão em pó multiação", Category: "Limpeza"},
		{ID: 21, Name: "Papel Higiênico 12 rolos", Price: price("18.90"), Description: "Folha dupla", Category: "Higiene"},
		{ID: 22, Name: "Sabonete em Barra 90g", Price: price("2.50"), Description: "Sabonete hidratante"},
	}
}
