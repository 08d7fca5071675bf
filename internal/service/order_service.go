package service

import (
	"context"
	"time"

	"real-preco/internal/catalog"
	"real-preco/internal/lifecycle"
	"real-preco/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService on a shared Session.
type orderService struct {
	session  *Session
	catalog  *catalog.Catalog
	pixKey   string
	recorder Recorder
	now      func() time.Time
	logger   zerolog.Logger
}

// NewOrderService creates a new order service. A nil recorder discards events.
func NewOrderService(
	session *Session,
	cat *catalog.Catalog,
	pixKey string,
	recorder Recorder,
	logger zerolog.Logger,
) OrderService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &orderService{
		session:  session,
		catalog:  cat,
		pixKey:   pixKey,
		recorder: recorder,
		now:      time.Now,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) Cart(ctx context.Context) model.CartView {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()
	return s.session.cartViewLocked()
}

func (s *orderService) AddItem(ctx context.Context, productID int) (model.CartView, error) {
	product, ok := s.catalog.ByID(productID)
	if !ok {
		s.logger.Warn().Int("product_id", productID).Msg("add of unknown product rejected")
		return model.CartView{}, model.ErrProductNotFound
	}

	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	s.session.cart.AddItem(product)
	s.recorder.RecordCartOperation("add")
	s.logger.Debug().
		Int("product_id", productID).
		Int("quantity", s.session.cart.Quantity(productID)).
		Msg("item added to cart")

	return s.session.cartViewLocked(), nil
}

func (s *orderService) UpdateQuantity(ctx context.Context, productID int, raw string) (model.CartView, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if !s.session.cart.UpdateQuantityInput(productID, raw) {
		s.logger.Debug().Int("product_id", productID).Str("input", raw).Msg("quantity input rejected")
		return s.session.cartViewLocked(), model.ErrInvalidQuantity
	}
	s.recorder.RecordCartOperation("update")

	return s.session.cartViewLocked(), nil
}

func (s *orderService) RemoveItem(ctx context.Context, productID int) model.CartView {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	s.session.cart.RemoveItem(productID)
	s.recorder.RecordCartOperation("remove")

	return s.session.cartViewLocked()
}

func (s *orderService) Navigation(ctx context.Context) lifecycle.State {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()
	return s.session.nav.State()
}

func (s *orderService) Navigate(ctx context.Context, event NavigationEvent, category string) (lifecycle.State, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	nav := s.session.nav
	var err error
	switch event {
	case EventSelectCategory:
		if _, ok := s.catalog.Category(category); !ok {
			err = model.ErrCategoryNotFound
			break
		}
		err = nav.SelectCategory(category)
	case EventClearCategory:
		err = nav.ClearCategory()
	case EventCart:
		nav.GoToCart()
	case EventConfirmCart:
		if err = nav.ConfirmCart(); err == nil {
			s.session.delivery = nil
		}
	case EventBack:
		nav.Back()
	case EventHome:
		nav.GoHome()
	default:
		err = model.ErrUnknownEvent
	}

	state := nav.State()
	if err != nil {
		s.logger.Debug().
			Str("event", string(event)).
			Str("view", state.View.String()).
			Err(err).
			Msg("navigation event rejected")
		return state, err
	}

	s.logger.Debug().
		Str("event", string(event)).
		Str("view", state.View.String()).
		Str("category", state.SelectedCategory).
		Msg("navigated")
	return state, nil
}

func (s *orderService) SubmitDelivery(ctx context.Context, details model.DeliveryDetails) (*model.PaymentInstructions, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if s.session.nav.View() != lifecycle.ViewCheckout {
		return nil, model.ErrInvalidTransition
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	s.session.delivery = &details
	s.logger.Info().Msg("delivery details submitted")

	return s.paymentInstructionsLocked(), nil
}

func (s *orderService) PaymentInstructions(ctx context.Context) (*model.PaymentInstructions, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if err := s.checkPayableLocked(); err != nil {
		return nil, err
	}
	return s.paymentInstructionsLocked(), nil
}

func (s *orderService) ConfirmPayment(ctx context.Context) (*model.Receipt, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if err := s.checkPayableLocked(); err != nil {
		return nil, err
	}

	// The receipt is taken before the transition clears the cart.
	view := s.session.cartViewLocked()
	receipt := &model.Receipt{
		ID:          uuid.New(),
		Delivery:    *s.session.delivery,
		Lines:       view.Lines,
		TotalItems:  view.TotalItems,
		Total:       view.TotalPrice,
		ConfirmedAt: s.now().UTC(),
	}

	if err := s.session.nav.OrderConfirmed(); err != nil {
		return nil, err
	}
	s.session.delivery = nil
	s.recorder.RecordOrderConfirmed(receipt.Total, receipt.TotalItems)

	s.logger.Info().
		Str("receipt_id", receipt.ID.String()).
		Int("total_items", receipt.TotalItems).
		Str("total", receipt.Total.StringFixed(2)).
		Msg("order confirmed")

	return receipt, nil
}

func (s *orderService) checkPayableLocked() error {
	if s.session.nav.View() != lifecycle.ViewCheckout {
		return model.ErrInvalidTransition
	}
	if s.session.delivery == nil {
		return model.ErrDeliveryPending
	}
	return nil
}

func (s *orderService) paymentInstructionsLocked() *model.PaymentInstructions {
	total := s.session.cart.TotalPrice()
	return &model.PaymentInstructions{
		PixKey:         s.pixKey,
		Total:          total,
		FormattedTotal: model.FormatBRL(total),
	}
}
