package service

import (
	"sync"

	"real-preco/internal/cart"
	"real-preco/internal/lifecycle"
	"real-preco/internal/matcher"
	"real-preco/internal/model"

	"github.com/rs/zerolog"
)

// Session is the single shopper session a process serves.
//
// mu serialises every cart and navigation mutation. It is never held while a
// smart-list search waits on the matching service; the dialog discards stale
// results itself. Lock order is mu before the dialog's own lock.
type Session struct {
	mu       sync.Mutex
	cart     *cart.Store
	nav      *lifecycle.Controller
	delivery *model.DeliveryDetails
	dialog   *matcher.Dialog
}

// NewSession creates an empty session at the shop front.
func NewSession(searcher matcher.Searcher, logger zerolog.Logger) *Session {
	store := cart.NewStore()
	return &Session{
		cart:   store,
		nav:    lifecycle.NewController(store),
		dialog: matcher.NewDialog(searcher, logger),
	}
}

func cartView(lines []cart.Line) model.CartView {
	views := make([]model.CartLineView, len(lines))
	for i, l := range lines {
		views[i] = model.CartLineView{
			Product:   l.Product,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		}
	}

	total := cart.TotalPrice(lines)
	return model.CartView{
		Lines:          views,
		TotalItems:     cart.TotalItems(lines),
		TotalPrice:     total,
		FormattedTotal: model.FormatBRL(total),
	}
}

// cartViewLocked must be called with mu held.
func (s *Session) cartViewLocked() model.CartView {
	return cartView(s.cart.Lines())
}
