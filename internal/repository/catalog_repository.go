package repository

import (
	"context"

	"order-service/internal/domain"
)

// CatalogRepository is the read-only product/variant resolution used during
// order mutation. Every call reflects the latest persisted state; results are
// never cached. Absent rows yield nil, not an error.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	// GetVariant loads the variant together with its attribute values.
	GetVariant(ctx context.Context, id string) (*domain.ProductVariant, error)
}

// StockRepository is the inventory ledger: two counter primitives, no
// deduplication across retries. Availability is enforced by the conditional
// decrement itself, not by a separate read.
type StockRepository interface {
	// DecrementStock applies "stock = stock - qty" only when the current
	// stock covers qty, and reports whether it did.
	DecrementStock(ctx context.Context, targetID string, isVariant bool, qty int) (bool, error)
	IncrementStock(ctx context.Context, targetID string, isVariant bool, qty int) error
}
