package matcher

import (
	"context"
	"sync"

	"real-preco/internal/model"

	"github.com/rs/zerolog"
)

// Searcher is the matching operation the dialog drives.
type Searcher interface {
	Match(ctx context.Context, listText string) Result
}

// CartAdder is the part of the cart the dialog adds matched products to.
type CartAdder interface {
	AddItem(product model.Product)
	AddAll(products []model.Product) int
}

// Dialog hosts one smart-list search at a time.
//
// Each search gets a generation number. A result is applied only if its
// generation is still current when it arrives; starting a new search or closing
// the dialog bumps the generation and cancels the in-flight request.
type Dialog struct {
	mu         sync.Mutex
	searcher   Searcher
	generation uint64
	cancel     context.CancelFunc
	closed     bool
	result     Result
	logger     zerolog.Logger
}

// NewDialog creates a closed, idle dialog. The first Search opens it.
func NewDialog(searcher Searcher, logger zerolog.Logger) *Dialog {
	return &Dialog{
		searcher: searcher,
		closed:   true,
		result:   Result{Status: StatusIdle},
		logger:   logger.With().Str("component", "smart-list").Logger(),
	}
}

// Search runs a new match, superseding any pending one. It blocks until the
// match resolves. If the search was superseded or the dialog closed meanwhile,
// the result is discarded and ErrSearchSuperseded or ErrSmartListClosed returned.
func (d *Dialog) Search(ctx context.Context, listText string) (Result, error) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.generation++
	gen := d.generation
	searchCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.closed = false
	d.result = Result{Query: listText, Status: StatusLoading}
	d.mu.Unlock()

	result := d.searcher.Match(searchCtx, listText)

	d.mu.Lock()
	defer d.mu.Unlock()
	cancel()

	if gen != d.generation {
		if d.closed {
			d.logger.Debug().Uint64("generation", gen).Msg("discarding result for closed dialog")
			return Result{}, model.ErrSmartListClosed
		}
		d.logger.Debug().Uint64("generation", gen).Msg("discarding superseded result")
		return Result{}, model.ErrSearchSuperseded
	}

	d.cancel = nil
	d.result = result
	return result, nil
}

// Result returns the current dialog state.
func (d *Dialog) Result() Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Closed reports whether the dialog has been dismissed.
func (d *Dialog) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Close dismisses the dialog, cancelling any pending search.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeLocked()
}

func (d *Dialog) closeLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.generation++
	d.closed = true
	d.result = Result{Status: StatusIdle}
}

// AddProduct adds one matched product to cart.
func (d *Dialog) AddProduct(cart CartAdder, productID int) (model.Product, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return model.Product{}, model.ErrSmartListClosed
	}
	for _, p := range d.result.Products {
		if p.ID == productID {
			cart.AddItem(p)
			return p, nil
		}
	}
	return model.Product{}, model.ErrProductNotFound
}

// AddAll adds every matched product that is not already in cart, then closes
// the dialog. It returns the number of products added.
func (d *Dialog) AddAll(cart CartAdder) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, model.ErrSmartListClosed
	}
	added := 0
	if d.result.Status == StatusSuccess {
		added = cart.AddAll(d.result.Products)
	}
	d.closeLocked()
	return added, nil
}
