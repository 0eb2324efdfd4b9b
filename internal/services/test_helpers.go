package services

import (
	"order-service/internal/domain"
	"order-service/internal/mocks"
)

type testMocks struct {
	repo      *mocks.MockOrderRepository
	catalog   *mocks.MockCatalogRepository
	stock     *mocks.MockStockRepository
	publisher *mocks.MockPublisher
}

func newTestMocks() *testMocks {
	return &testMocks{
		repo:      new(mocks.MockOrderRepository),
		catalog:   new(mocks.MockCatalogRepository),
		stock:     new(mocks.MockStockRepository),
		publisher: new(mocks.MockPublisher),
	}
}

func (m *testMocks) service() *OrderService {
	return NewOrderService(m.repo, m.catalog, m.stock, m.publisher)
}

func testProduct(id, name string, price int64, stock int) *domain.Product {
	return &domain.Product{ID: id, Name: name, Price: price, Stock: stock}
}

func testOrder(id string, status domain.OrderStatus, items ...domain.OrderItem) *domain.Order {
	o := &domain.Order{
		ID:              id,
		OrderNumber:     "ORD-20250101-00042",
		Status:          status,
		PaymentStatus:   domain.PaymentPending,
		ShippingAddress: "1 Test Street",
		Items:           items,
	}
	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotal
	}
	o.Subtotal = subtotal
	o.Total = subtotal + o.ShippingFee - o.Discount
	return o
}
