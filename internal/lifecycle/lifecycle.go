// Package lifecycle implements the storefront navigation state machine.
package lifecycle

import (
	"real-preco/internal/model"
)

// View is one of the top-level storefront screens.
type View int

const (
	ViewShop View = iota
	ViewCart
	ViewCheckout
	ViewConfirmation
)

// String returns the lowercase view name used on the wire.
func (v View) String() string {
	switch v {
	case ViewShop:
		return "shop"
	case ViewCart:
		return "cart"
	case ViewCheckout:
		return "checkout"
	case ViewConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// MarshalText encodes the view by name.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ReturnPoint is the view and category restored when leaving the cart flow.
type ReturnPoint struct {
	View     View   `json:"view"`
	Category string `json:"category,omitempty"`
}

// State is a snapshot of the navigation state.
type State struct {
	View             View        `json:"view"`
	SelectedCategory string      `json:"selectedCategory,omitempty"`
	ReturnPoint      ReturnPoint `json:"returnPoint"`
	CanGoBack        bool        `json:"canGoBack"`
}

// CartClearer is the part of the cart the controller needs.
type CartClearer interface {
	Len() int
	Clear()
}

// Controller drives the transitions between storefront views.
// It is not safe for concurrent use; callers serialise access.
type Controller struct {
	cart        CartClearer
	view        View
	category    string
	returnPoint ReturnPoint
}

// NewController starts in the shop with no category selected.
func NewController(cart CartClearer) *Controller {
	return &Controller{
		cart:        cart,
		view:        ViewShop,
		returnPoint: ReturnPoint{View: ViewShop},
	}
}

// State returns the current navigation snapshot.
func (c *Controller) State() State {
	return State{
		View:             c.view,
		SelectedCategory: c.category,
		ReturnPoint:      c.returnPoint,
		CanGoBack:        c.CanGoBack(),
	}
}

// View returns the current view.
func (c *Controller) View() View {
	return c.view
}

// CanGoBack reports whether Back would change anything.
func (c *Controller) CanGoBack() bool {
	return c.view != ViewShop || c.category != ""
}

// SelectCategory drills into a category while shopping.
func (c *Controller) SelectCategory(name string) error {
	if c.view != ViewShop || name == "" {
		return model.ErrInvalidTransition
	}
	c.category = name
	return nil
}

// ClearCategory returns to the shop front from a category drilldown.
func (c *Controller) ClearCategory() error {
	if c.view != ViewShop {
		return model.ErrInvalidTransition
	}
	c.category = ""
	return nil
}

// GoToCart opens the cart from any view, remembering where the user came from.
// Entering the cart again overwrites the previous return point.
func (c *Controller) GoToCart() {
	c.returnPoint = ReturnPoint{View: c.view, Category: c.category}
	c.view = ViewCart
}

// ConfirmCart moves from the cart to checkout. An empty cart cannot be confirmed.
func (c *Controller) ConfirmCart() error {
	if c.view != ViewCart {
		return model.ErrInvalidTransition
	}
	if c.cart.Len() == 0 {
		return model.ErrEmptyCart
	}
	c.view = ViewCheckout
	return nil
}

// OrderConfirmed records the customer's payment confirmation, clears the cart
// and shows the confirmation screen.
func (c *Controller) OrderConfirmed() error {
	if c.view != ViewCheckout {
		return model.ErrInvalidTransition
	}
	c.cart.Clear()
	c.view = ViewConfirmation
	return nil
}

// Back applies the first matching rule: checkout returns to the cart; cart and
// confirmation restore the return point; a shop drilldown clears its category.
func (c *Controller) Back() {
	switch {
	case c.view == ViewCheckout:
		c.view = ViewCart
	case c.view == ViewCart || c.view == ViewConfirmation:
		c.view = c.returnPoint.View
		c.category = c.returnPoint.Category
	case c.category != "":
		c.category = ""
	}
}

// GoHome returns to the shop front from anywhere.
func (c *Controller) GoHome() {
	c.view = ViewShop
	c.category = ""
}
