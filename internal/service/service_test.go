package service

import (
	"context"
	"testing"
	"time"

	"real-preco/internal/catalog"
	"real-preco/internal/matcher"
	"real-preco/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSearcher is a mock implementation of matcher.Searcher.
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Match(ctx context.Context, listText string) matcher.Result {
	args := m.Called(ctx, listText)
	return args.Get(0).(matcher.Result)
}

// MockRecorder is a mock implementation of Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordCartOperation(operation string) {
	m.Called(operation)
}

func (m *MockRecorder) RecordOrderConfirmed(total decimal.Decimal, items int) {
	m.Called(total, items)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Arroz Branco 5kg", Price: decimal.RequireFromString("24.90"), Category: "Mercearia", Subcategory: "Grãos"},
		{ID: 2, Name: "Feijão Carioca 1kg", Price: decimal.RequireFromString("8.49"), Category: "Mercearia", Subcategory: "Grãos"},
		{ID: 3, Name: "Leite Integral 1L", Price: decimal.RequireFromString("4.99"), Category: "Laticínios", Warning: "Contém lactose"},
		{ID: 4, Name: "Picanha Bovina", Price: decimal.RequireFromString("69.90"), OriginalPrice: decimalPtr("89.90"), Category: "Ofertas", Subcategory: "Açougue"},
		{ID: 5, Name: "Sabonete", Price: decimal.RequireFromString("2.50")},
	}
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(testProducts())
	require.NoError(t, err)
	return cat
}

// fixture wires the services the way cmd/api does, on one shared session.
type fixture struct {
	catalog   *catalog.Catalog
	session   *Session
	orders    OrderService
	smartList SmartListService
	recorder  *MockRecorder
	searcher  *MockSearcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()

	cat := newTestCatalog(t)
	searcher := new(MockSearcher)
	recorder := new(MockRecorder)
	recorder.On("RecordCartOperation", mock.Anything).Maybe()

	session := NewSession(searcher, logger)
	orders := NewOrderService(session, cat, "00.000.000/0001-00", recorder, logger)
	orders.(*orderService).now = func() time.Time {
		return time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	}

	return &fixture{
		catalog:   cat,
		session:   session,
		orders:    orders,
		smartList: NewSmartListService(session, recorder, logger),
		recorder:  recorder,
		searcher:  searcher,
	}
}
