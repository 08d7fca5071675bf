package lifecycle

import (
	"testing"

	"real-preco/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCart is a minimal CartClearer for exercising transitions.
type fakeCart struct {
	lines   int
	cleared int
}

func (f *fakeCart) Len() int { return f.lines }

func (f *fakeCart) Clear() {
	f.lines = 0
	f.cleared++
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeCart{})

	st := c.State()
	assert.Equal(t, ViewShop, st.View)
	assert.Empty(t, st.SelectedCategory)
	assert.False(t, st.CanGoBack)
}

func TestController_BackRestoresCapturedCategory(t *testing.T) {
	c := NewController(&fakeCart{lines: 1})

	require.NoError(t, c.SelectCategory("Bebidas"))
	assert.Equal(t, State{View: ViewShop, SelectedCategory: "Bebidas", ReturnPoint: ReturnPoint{View: ViewShop}, CanGoBack: true}, c.State())

	c.GoToCart()
	assert.Equal(t, ViewCart, c.View())
	assert.Equal(t, ReturnPoint{View: ViewShop, Category: "Bebidas"}, c.State().ReturnPoint)

	c.Back()
	assert.Equal(t, ViewShop, c.View())
	assert.Equal(t, "Bebidas", c.State().SelectedCategory)
}

func TestController_CheckoutFlowClearsCart(t *testing.T) {
	cart := &fakeCart{lines: 2}
	c := NewController(cart)

	c.GoToCart()
	require.NoError(t, c.ConfirmCart())
	assert.Equal(t, ViewCheckout, c.View())
	assert.Equal(t, 0, cart.cleared)

	require.NoError(t, c.OrderConfirmed())
	assert.Equal(t, ViewConfirmation, c.View())
	assert.Equal(t, 1, cart.cleared)
	assert.Equal(t, 0, cart.Len())
}

func TestController_ConfirmEmptyCart(t *testing.T) {
	c := NewController(&fakeCart{})
	c.GoToCart()

	err := c.ConfirmCart()
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Equal(t, ViewCart, c.View())
}

func TestController_InvalidTransitionsKeepState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
		act   func(c *Controller) error
		view  View
	}{
		{
			name:  "Confirm cart from shop",
			setup: func(c *Controller) {},
			act:   func(c *Controller) error { return c.ConfirmCart() },
			view:  ViewShop,
		},
		{
			name:  "Order confirmed from cart",
			setup: func(c *Controller) { c.GoToCart() },
			act:   func(c *Controller) error { return c.OrderConfirmed() },
			view:  ViewCart,
		},
		{
			name:  "Select category from cart",
			setup: func(c *Controller) { c.GoToCart() },
			act:   func(c *Controller) error { return c.SelectCategory("Padaria") },
			view:  ViewCart,
		},
		{
			name:  "Clear category from checkout",
			setup: func(c *Controller) { c.GoToCart(); _ = c.ConfirmCart() },
			act:   func(c *Controller) error { return c.ClearCategory() },
			view:  ViewCheckout,
		},
		{
			name:  "Select empty category",
			setup: func(c *Controller) {},
			act:   func(c *Controller) error { return c.SelectCategory("") },
			view:  ViewShop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &fakeCart{lines: 1}
			c := NewController(cart)
			tt.setup(c)
			before := c.State()

			err := tt.act(c)

			assert.ErrorIs(t, err, model.ErrInvalidTransition)
			assert.Equal(t, tt.view, c.View())
			assert.Equal(t, before, c.State())
			assert.Equal(t, 0, cart.cleared)
		})
	}
}

func TestController_BackPriority(t *testing.T) {
	tests := []struct {
		name             string
		setup            func(c *Controller)
		expectedView     View
		expectedCategory string
	}{
		{
			name: "Checkout goes to cart even with category captured",
			setup: func(c *Controller) {
				_ = c.SelectCategory("Hortifruti")
				c.GoToCart()
				_ = c.ConfirmCart()
			},
			expectedView:     ViewCart,
			expectedCategory: "Hortifruti",
		},
		{
			name: "Cart restores return point",
			setup: func(c *Controller) {
				_ = c.SelectCategory("Padaria")
				c.GoToCart()
			},
			expectedView:     ViewShop,
			expectedCategory: "Padaria",
		},
		{
			name: "Confirmation restores return point",
			setup: func(c *Controller) {
				_ = c.SelectCategory("Limpeza")
				c.GoToCart()
				_ = c.ConfirmCart()
				_ = c.OrderConfirmed()
			},
			expectedView:     ViewShop,
			expectedCategory: "Limpeza",
		},
		{
			name: "Shop with category clears it",
			setup: func(c *Controller) {
				_ = c.SelectCategory("Bebidas")
			},
			expectedView:     ViewShop,
			expectedCategory: "",
		},
		{
			name:             "Shop front is a no-op",
			setup:            func(c *Controller) {},
			expectedView:     ViewShop,
			expectedCategory: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&fakeCart{lines: 1})
			tt.setup(c)

			c.Back()

			st := c.State()
			assert.Equal(t, tt.expectedView, st.View)
			if tt.expectedView == ViewShop {
				assert.Equal(t, tt.expectedCategory, st.SelectedCategory)
			}
		})
	}
}

func TestController_CheckoutBackThenBackRestores(t *testing.T) {
	c := NewController(&fakeCart{lines: 1})
	_ = c.SelectCategory("Bebidas")
	c.GoToCart()
	require.NoError(t, c.ConfirmCart())

	c.Back()
	assert.Equal(t, ViewCart, c.View())

	c.Back()
	assert.Equal(t, ViewShop, c.View())
	assert.Equal(t, "Bebidas", c.State().SelectedCategory)
}

func TestController_ReturnPointIsSingleLevel(t *testing.T) {
	c := NewController(&fakeCart{lines: 1})
	_ = c.SelectCategory("Bebidas")
	c.GoToCart()

	// Re-entering the cart from the cart overwrites the return point.
	c.GoToCart()
	assert.Equal(t, ReturnPoint{View: ViewCart, Category: "Bebidas"}, c.State().ReturnPoint)

	c.Back()
	assert.Equal(t, ViewCart, c.View())
}

func TestController_GoHomeFromAnywhere(t *testing.T) {
	cart := &fakeCart{lines: 1}
	c := NewController(cart)
	_ = c.SelectCategory("Bebidas")
	c.GoToCart()
	require.NoError(t, c.ConfirmCart())
	require.NoError(t, c.OrderConfirmed())

	c.GoHome()

	st := c.State()
	assert.Equal(t, ViewShop, st.View)
	assert.Empty(t, st.SelectedCategory)
	assert.False(t, st.CanGoBack)
}

func TestView_MarshalText(t *testing.T) {
	for v, name := range map[View]string{
		ViewShop:         "shop",
		ViewCart:         "cart",
		ViewCheckout:     "checkout",
		ViewConfirmation: "confirmation",
	} {
		b, err := v.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(b))
	}
}
