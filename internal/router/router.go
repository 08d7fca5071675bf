package router

import (
	"net/http"
	"strings"

	"real-preco/internal/handler"
	"real-preco/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	SmartList *handler.SmartListHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if h.Metrics != nil {
		mux.Handle("/metrics", h.Metrics)
	}

	// Catalogue routes
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if trimmed(r) == "/api/products" {
			h.Product.Search(w, r)
			return
		}
		h.Product.GetByID(w, r)
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)
	mux.HandleFunc("/api/deals", h.Product.Deals)

	categoryRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if trimmed(r) == "/api/categories" {
			h.Product.Categories(w, r)
			return
		}
		h.Product.Category(w, r)
	}
	mux.HandleFunc("/api/categories", categoryRouteHandler)
	mux.HandleFunc("/api/categories/", categoryRouteHandler)

	// Cart routes
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := trimmed(r)
		switch {
		case path == "/api/cart":
			h.Order.GetCart(w, r)
		case path == "/api/cart/items":
			h.Order.AddItem(w, r)
		case strings.HasPrefix(path, "/api/cart/items/") && r.Method == http.MethodDelete:
			h.Order.RemoveItem(w, r)
		case strings.HasPrefix(path, "/api/cart/items/"):
			h.Order.UpdateItem(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/", cartRouteHandler)

	// Navigation routes
	navigationRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if trimmed(r) == "/api/navigation" {
			h.Order.GetNavigation(w, r)
			return
		}
		h.Order.Navigate(w, r)
	}
	mux.HandleFunc("/api/navigation", navigationRouteHandler)
	mux.HandleFunc("/api/navigation/", navigationRouteHandler)

	// Checkout routes
	mux.HandleFunc("/api/checkout/delivery", h.Order.SubmitDelivery)
	mux.HandleFunc("/api/checkout/payment", h.Order.Payment)
	mux.HandleFunc("/api/checkout/confirm", h.Order.ConfirmPayment)

	// Smart list routes
	smartListRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := trimmed(r)
		switch {
		case path == "/api/smart-list":
			h.SmartList.Get(w, r)
		case path == "/api/smart-list/search":
			h.SmartList.Search(w, r)
		case path == "/api/smart-list/add-all":
			h.SmartList.AddAll(w, r)
		case path == "/api/smart-list/close":
			h.SmartList.Close(w, r)
		case strings.HasPrefix(path, "/api/smart-list/items/"):
			h.SmartList.AddItem(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/smart-list", smartListRouteHandler)
	mux.HandleFunc("/api/smart-list/", smartListRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}

func trimmed(r *http.Request) string {
	if r.URL.Path == "/" {
		return r.URL.Path
	}
	return strings.TrimSuffix(r.URL.Path, "/")
}
