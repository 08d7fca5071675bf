package handler

import (
	"context"

	"real-preco/internal/lifecycle"
	"real-preco/internal/matcher"
	"real-preco/internal/model"
	"real-preco/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Search(ctx context.Context, term string) []model.ProductGroup {
	args := m.Called(ctx, term)
	return args.Get(0).([]model.ProductGroup)
}

func (m *MockProductService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Deals(ctx context.Context) []model.Product {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product)
}

func (m *MockProductService) Categories(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockProductService) Category(ctx context.Context, name string) (*model.CategoryView, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryView), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Cart(ctx context.Context) model.CartView {
	args := m.Called(ctx)
	return args.Get(0).(model.CartView)
}

func (m *MockOrderService) AddItem(ctx context.Context, productID int) (model.CartView, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.CartView), args.Error(1)
}

func (m *MockOrderService) UpdateQuantity(ctx context.Context, productID int, raw string) (model.CartView, error) {
	args := m.Called(ctx, productID, raw)
	return args.Get(0).(model.CartView), args.Error(1)
}

func (m *MockOrderService) RemoveItem(ctx context.Context, productID int) model.CartView {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.CartView)
}

func (m *MockOrderService) Navigation(ctx context.Context) lifecycle.State {
	args := m.Called(ctx)
	return args.Get(0).(lifecycle.State)
}

func (m *MockOrderService) Navigate(ctx context.Context, event service.NavigationEvent, category string) (lifecycle.State, error) {
	args := m.Called(ctx, event, category)
	return args.Get(0).(lifecycle.State), args.Error(1)
}

func (m *MockOrderService) SubmitDelivery(ctx context.Context, details model.DeliveryDetails) (*model.PaymentInstructions, error) {
	args := m.Called(ctx, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentInstructions), args.Error(1)
}

func (m *MockOrderService) PaymentInstructions(ctx context.Context) (*model.PaymentInstructions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentInstructions), args.Error(1)
}

func (m *MockOrderService) ConfirmPayment(ctx context.Context) (*model.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Receipt), args.Error(1)
}

// MockSmartListService is a mock implementation of SmartListService.
type MockSmartListService struct {
	mock.Mock
}

func (m *MockSmartListService) State(ctx context.Context) service.SmartListView {
	args := m.Called(ctx)
	return args.Get(0).(service.SmartListView)
}

func (m *MockSmartListService) Search(ctx context.Context, listText string) (matcher.Result, error) {
	args := m.Called(ctx, listText)
	return args.Get(0).(matcher.Result), args.Error(1)
}

func (m *MockSmartListService) AddProduct(ctx context.Context, productID int) (model.CartView, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.CartView), args.Error(1)
}

func (m *MockSmartListService) AddAll(ctx context.Context) (*service.SmartListAddResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SmartListAddResult), args.Error(1)
}

func (m *MockSmartListService) Close(ctx context.Context) {
	m.Called(ctx)
}
