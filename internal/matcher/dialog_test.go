package matcher

import (
	"context"
	"testing"
	"time"

	"real-preco/internal/cart"
	"real-preco/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSearcher returns canned results; the query "slow" blocks until its
// context is cancelled.
type scriptedSearcher struct {
	results map[string]Result
}

func (s *scriptedSearcher) Match(ctx context.Context, listText string) Result {
	if listText == "slow" {
		<-ctx.Done()
		return Result{Query: listText, Status: StatusFailed, Reason: "cancelled"}
	}
	return s.results[listText]
}

func testProduct(id int) model.Product {
	return model.Product{ID: id, Name: "Produto", Price: decimal.NewFromInt(int64(id))}
}

func newScriptedDialog() *Dialog {
	return NewDialog(&scriptedSearcher{results: map[string]Result{
		"arroz e feijão": {
			Query:    "arroz e feijão",
			Status:   StatusSuccess,
			Products: []model.Product{testProduct(1), testProduct(2), testProduct(3)},
		},
		"caviar": {Query: "caviar", Status: StatusEmptyMatch, Message: EmptyMatchMessage},
	}}, zerolog.Nop())
}

func waitForLoading(t *testing.T, d *Dialog) {
	t.Helper()
	require.Eventually(t, func() bool {
		return d.Result().Status == StatusLoading
	}, time.Second, time.Millisecond)
}

func TestDialog_InitialState(t *testing.T) {
	d := newScriptedDialog()
	assert.Equal(t, StatusIdle, d.Result().Status)
	assert.True(t, d.Closed())
}

func TestDialog_Search(t *testing.T) {
	d := newScriptedDialog()

	result, err := d.Search(context.Background(), "arroz e feijão")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, result, d.Result())
	assert.False(t, d.Closed())
}

func TestDialog_AddAllBeforeSearch(t *testing.T) {
	d := newScriptedDialog()

	_, err := d.AddAll(cart.NewStore())

	assert.ErrorIs(t, err, model.ErrSmartListClosed)
}

func TestDialog_NewSearchSupersedesPending(t *testing.T) {
	d := newScriptedDialog()

	errCh := make(chan error, 1)
	go func() {
		_, err := d.Search(context.Background(), "slow")
		errCh <- err
	}()
	waitForLoading(t, d)

	result, err := d.Search(context.Background(), "arroz e feijão")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)

	assert.ErrorIs(t, <-errCh, model.ErrSearchSuperseded)
	assert.Equal(t, StatusSuccess, d.Result().Status, "stale result must not overwrite the newer one")
}

func TestDialog_CloseDiscardsPendingResult(t *testing.T) {
	d := newScriptedDialog()
	store := cart.NewStore()

	errCh := make(chan error, 1)
	go func() {
		_, err := d.Search(context.Background(), "slow")
		errCh <- err
	}()
	waitForLoading(t, d)

	d.Close()

	assert.ErrorIs(t, <-errCh, model.ErrSmartListClosed)
	assert.True(t, d.Closed())
	assert.Equal(t, StatusIdle, d.Result().Status)
	assert.Equal(t, 0, store.Len())
}

func TestDialog_SearchReopensClosedDialog(t *testing.T) {
	d := newScriptedDialog()
	d.Close()

	result, err := d.Search(context.Background(), "caviar")

	require.NoError(t, err)
	assert.False(t, d.Closed())
	assert.Equal(t, StatusEmptyMatch, result.Status)
}

func TestDialog_AddProduct(t *testing.T) {
	d := newScriptedDialog()
	store := cart.NewStore()
	_, err := d.Search(context.Background(), "arroz e feijão")
	require.NoError(t, err)

	p, err := d.AddProduct(store, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.ID)

	_, err = d.AddProduct(store, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Quantity(2), "single add increments like any add")

	_, err = d.AddProduct(store, 99)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestDialog_AddAllSkipsProductsInCart(t *testing.T) {
	d := newScriptedDialog()
	store := cart.NewStore()
	store.AddItem(testProduct(2))
	_, err := d.Search(context.Background(), "arroz e feijão")
	require.NoError(t, err)

	added, err := d.AddAll(store)

	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, store.Quantity(1))
	assert.Equal(t, 1, store.Quantity(2))
	assert.Equal(t, 1, store.Quantity(3))
	assert.True(t, d.Closed())
}

func TestDialog_AddAllWithoutSuccessAddsNothing(t *testing.T) {
	d := newScriptedDialog()
	store := cart.NewStore()
	_, err := d.Search(context.Background(), "caviar")
	require.NoError(t, err)

	added, err := d.AddAll(store)

	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, store.Len())
}

func TestDialog_AddAfterClose(t *testing.T) {
	d := newScriptedDialog()
	store := cart.NewStore()
	_, err := d.Search(context.Background(), "arroz e feijão")
	require.NoError(t, err)
	d.Close()

	_, err = d.AddAll(store)
	assert.ErrorIs(t, err, model.ErrSmartListClosed)

	_, err = d.AddProduct(store, 1)
	assert.ErrorIs(t, err, model.ErrSmartListClosed)
	assert.Equal(t, 0, store.Len())
}
