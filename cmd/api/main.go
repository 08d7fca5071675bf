package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"real-preco/internal/catalog"
	"real-preco/internal/config"
	"real-preco/internal/database"
	"real-preco/internal/handler"
	"real-preco/internal/matcher"
	"real-preco/internal/metrics"
	"real-preco/internal/repository"
	"real-preco/internal/router"
	"real-preco/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting real-preco API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, closeCatalog, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}
	defer closeCatalog()

	logger.Info().
		Str("source", cfg.Catalog.Source).
		Int("products", cat.Len()).
		Msg("catalogue loaded")

	storeMetrics := metrics.New()

	// Initialize the matching service client
	var client matcher.TextMatcher = matcher.Unavailable{}
	if cfg.Matcher.Enabled() {
		gemini, err := matcher.NewGeminiMatcher(ctx, cfg.Matcher.GeminiAPIKey, cfg.Matcher.GeminiModel, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise Gemini client, smart list will report failures")
		} else {
			client = gemini
		}
	} else {
		logger.Info().Msg("GEMINI_API_KEY not set, smart list disabled")
	}

	listMatcher, err := matcher.New(cat, client, cfg.Matcher.Timeout(), storeMetrics, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize matcher: %w", err)
	}

	// Initialize services
	session := service.NewSession(listMatcher, logger)
	productService := service.NewProductService(cat, logger)
	orderService := service.NewOrderService(session, cat, cfg.Checkout.PixKey, storeMetrics, logger)
	smartListService := service.NewSmartListService(session, storeMetrics, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:   handler.NewProductHandler(productService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		SmartList: handler.NewSmartListHandler(smartListService, logger),
		Metrics:   promhttp.Handler(),
	}, cfg.Auth.APIKey, logger)

	// Create HTTP server. The write timeout leaves room for a full matching call.
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Matcher.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog builds the catalogue from the configured source. The returned
// func releases any resources the source holds.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*catalog.Catalog, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}

		products, err := repository.NewProductRepository(pool, logger).ListAll(ctx)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}

		cat, err := catalog.New(products)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return cat, pool.Close, nil

	case config.CatalogSourceS3:
		fileLoader := catalog.NewFileLoader(logger)
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}

		loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
		cat, err := catalog.Load(ctx, loader, cfg.Catalog.File)
		return cat, noop, err

	default:
		cat, err := catalog.Load(ctx, catalog.NewFileLoader(logger), cfg.Catalog.File)
		return cat, noop, err
	}
}
