package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// editableStatuses are the states in which line items may still be added,
// changed or removed. Cancellation is allowed from exactly the same states.
var editableStatuses = map[OrderStatus]bool{
	StatusPending:   true,
	StatusConfirmed: true,
}

func (s OrderStatus) Editable() bool {
	return editableStatuses[s]
}

func (s OrderStatus) Cancellable() bool {
	return editableStatuses[s]
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
