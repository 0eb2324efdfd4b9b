package repository

import (
	"context"
	"errors"

	"order-service/internal/domain"
)

// ErrDuplicateOrderNumber is returned by Create when the order-number unique
// index rejects the row. The service retries with a fresh number.
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// OrderRepository persists the order aggregate. Reads return nil (not an
// error) when nothing matches, mirroring the catalog repository.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItems(ctx context.Context, items []*domain.OrderItem) error
	Delete(ctx context.Context, orderID string) error

	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	UpdateOrder(ctx context.Context, order *domain.Order) error
	UpdateItem(ctx context.Context, item *domain.OrderItem) error
	DeleteItem(ctx context.Context, itemID string) error
}
