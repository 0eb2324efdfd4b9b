package pricing

import "order-service/internal/domain"

// Totals holds the recomputed monetary summary of an order.
type Totals struct {
	Subtotal int64
	Total    int64
}

// ComputeTotals derives subtotal and grand total from the current line items.
// Discount is not clamped: a discount above subtotal+shipping yields a
// negative total, which callers currently accept (store-credit scenarios).
func ComputeTotals(items []domain.OrderItem, shippingFee, discount int64) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += int64(it.Quantity) * it.UnitPrice
	}
	return Totals{
		Subtotal: subtotal,
		Total:    subtotal + shippingFee - discount,
	}
}

// LineTotal is the canonical quantity x unit-price computation used everywhere
// a line total is (re)derived.
func LineTotal(quantity int, unitPrice int64) int64 {
	return int64(quantity) * unitPrice
}
