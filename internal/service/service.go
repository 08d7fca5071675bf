package service

import (
	"context"

	"real-preco/internal/lifecycle"
	"real-preco/internal/matcher"
	"real-preco/internal/model"

	"github.com/shopspring/decimal"
)

// ProductService defines read operations over the catalogue.
type ProductService interface {
	// Search returns products whose name contains term, grouped by category.
	// An empty term returns the whole catalogue.
	Search(ctx context.Context, term string) []model.ProductGroup

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// Deals returns the discounted products.
	Deals(ctx context.Context) []model.Product

	// Categories returns the category navigation list, deals first.
	Categories(ctx context.Context) []string

	// Category returns a category drilldown grouped by subcategory.
	Category(ctx context.Context, name string) (*model.CategoryView, error)
}

// OrderService drives the shopper's cart, navigation and checkout.
type OrderService interface {
	// Cart returns the current cart with its totals.
	Cart(ctx context.Context) model.CartView

	// AddItem adds one unit of a catalogue product.
	AddItem(ctx context.Context, productID int) (model.CartView, error)

	// UpdateQuantity applies raw quantity input to a cart line. Input that is
	// not a whole number is rejected with ErrInvalidQuantity and the cart kept.
	UpdateQuantity(ctx context.Context, productID int, raw string) (model.CartView, error)

	// RemoveItem deletes a cart line. Unknown products are ignored.
	RemoveItem(ctx context.Context, productID int) model.CartView

	// Navigation returns the current navigation state.
	Navigation(ctx context.Context) lifecycle.State

	// Navigate applies a navigation event. category is used by EventSelectCategory.
	Navigate(ctx context.Context, event NavigationEvent, category string) (lifecycle.State, error)

	// SubmitDelivery stores the delivery details and returns the PIX instructions.
	SubmitDelivery(ctx context.Context, details model.DeliveryDetails) (*model.PaymentInstructions, error)

	// PaymentInstructions returns the PIX instructions for the current cart.
	PaymentInstructions(ctx context.Context) (*model.PaymentInstructions, error)

	// ConfirmPayment records the shopper's "already paid" confirmation and
	// returns the receipt. The cart is cleared afterwards.
	ConfirmPayment(ctx context.Context) (*model.Receipt, error)
}

// SmartListService hosts the smart shopping list dialog.
type SmartListService interface {
	// State returns the dialog's current result.
	State(ctx context.Context) SmartListView

	// Search matches listText against the catalogue, superseding any pending search.
	Search(ctx context.Context, listText string) (matcher.Result, error)

	// AddProduct adds one matched product to the cart.
	AddProduct(ctx context.Context, productID int) (model.CartView, error)

	// AddAll adds every matched product not yet in the cart and closes the dialog.
	AddAll(ctx context.Context) (*SmartListAddResult, error)

	// Close dismisses the dialog and discards any pending search.
	Close(ctx context.Context)
}

// NavigationEvent names a navigation action.
type NavigationEvent string

// Navigation events.
const (
	EventSelectCategory NavigationEvent = "select-category"
	EventClearCategory  NavigationEvent = "clear-category"
	EventCart           NavigationEvent = "cart"
	EventConfirmCart    NavigationEvent = "confirm-cart"
	EventBack           NavigationEvent = "back"
	EventHome           NavigationEvent = "home"
)

// SmartListView is the dialog state shown to the shopper.
type SmartListView struct {
	Open   bool           `json:"open"`
	Result matcher.Result `json:"result"`
}

// SmartListAddResult reports a bulk add from the smart list.
type SmartListAddResult struct {
	Added int            `json:"added"`
	Cart  model.CartView `json:"cart"`
}

// Recorder receives storefront business events.
type Recorder interface {
	RecordCartOperation(operation string)
	RecordOrderConfirmed(total decimal.Decimal, items int)
}

type nopRecorder struct{}

func (nopRecorder) RecordCartOperation(string) {}
func (nopRecorder) RecordOrderConfirmed(decimal.Decimal, int) {}
