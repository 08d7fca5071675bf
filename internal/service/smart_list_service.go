package service

import (
	"context"

	"real-preco/internal/lifecycle"
	"real-preco/internal/matcher"
	"real-preco/internal/model"

	"github.com/rs/zerolog"
)

// smartListService implements SmartListService on a shared Session.
type smartListService struct {
	session  *Session
	recorder Recorder
	logger   zerolog.Logger
}

// NewSmartListService creates a new smart list service. A nil recorder discards events.
func NewSmartListService(session *Session, recorder Recorder, logger zerolog.Logger) SmartListService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &smartListService{
		session:  session,
		recorder: recorder,
		logger:   logger.With().Str("service", "smart-list").Logger(),
	}
}

func (s *smartListService) State(ctx context.Context) SmartListView {
	dialog := s.session.dialog
	return SmartListView{
		Open:   !dialog.Closed(),
		Result: dialog.Result(),
	}
}

// Search only runs from the shop front. The session lock is held for the view
// check only: the matching call may take seconds and must not block cart or
// navigation requests.
func (s *smartListService) Search(ctx context.Context, listText string) (matcher.Result, error) {
	s.session.mu.Lock()
	view := s.session.nav.View()
	s.session.mu.Unlock()
	if view != lifecycle.ViewShop {
		s.logger.Debug().Str("view", view.String()).Msg("smart list search rejected outside the shop")
		return matcher.Result{}, model.ErrInvalidTransition
	}

	result, err := s.session.dialog.Search(ctx, listText)
	if err != nil {
		s.logger.Debug().Err(err).Msg("smart list result discarded")
		return matcher.Result{}, err
	}

	s.logger.Info().
		Str("status", string(result.Status)).
		Int("products", len(result.Products)).
		Msg("smart list search completed")
	return result, nil
}

func (s *smartListService) AddProduct(ctx context.Context, productID int) (model.CartView, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if _, err := s.session.dialog.AddProduct(s.session.cart, productID); err != nil {
		return model.CartView{}, err
	}
	s.recorder.RecordCartOperation("smart_list_add")

	return s.session.cartViewLocked(), nil
}

func (s *smartListService) AddAll(ctx context.Context) (*SmartListAddResult, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	added, err := s.session.dialog.AddAll(s.session.cart)
	if err != nil {
		return nil, err
	}
	if added > 0 {
		s.recorder.RecordCartOperation("smart_list_add_all")
	}
	s.logger.Info().Int("added", added).Msg("smart list products added to cart")

	return &SmartListAddResult{
		Added: added,
		Cart:  s.session.cartViewLocked(),
	}, nil
}

func (s *smartListService) Close(ctx context.Context) {
	s.session.dialog.Close()
}
