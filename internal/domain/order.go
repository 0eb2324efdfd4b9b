package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is the aggregate root: a header plus its owned line items.
// Monetary amounts are in the smallest currency unit.
type Order struct {
	ID            string        `json:"id" gorm:"type:char(36);primaryKey"`
	OrderNumber   string        `json:"orderNumber" gorm:"size:32;uniqueIndex;not null"`
	UserID        *string       `json:"userId" gorm:"type:char(36);index"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"type:varchar(16);not null;default:'pending'"`

	Subtotal    int64 `json:"subtotal" gorm:"not null"`
	ShippingFee int64 `json:"shippingFee" gorm:"not null"`
	Discount    int64 `json:"discount" gorm:"not null"`
	Total       int64 `json:"total" gorm:"not null"`

	ShippingAddress string `json:"shippingAddress" gorm:"type:text;not null"`
	BillingAddress  string `json:"billingAddress" gorm:"type:text"`
	PaymentMethod   string `json:"paymentMethod" gorm:"size:64"`
	Notes           string `json:"notes" gorm:"type:text"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem snapshots the product name, variant label and unit price at the
// time it was added. Unit price never changes afterwards; only quantity does.
type OrderItem struct {
	ID          string  `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID     string  `json:"orderId" gorm:"type:char(36);index;not null"`
	ProductID   string  `json:"productId" gorm:"type:char(36);not null"`
	VariantID   *string `json:"variantId" gorm:"type:char(36)"`
	ProductName string  `json:"productName" gorm:"size:255;not null"`
	VariantName string  `json:"variantName" gorm:"size:255"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   int64   `json:"unitPrice" gorm:"not null"`
	LineTotal   int64   `json:"lineTotal" gorm:"not null"`
}

// FindItem returns the item with the given id, or nil if the order has none.
func (o *Order) FindItem(itemID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// FindItemByProduct matches on the (product, variant) pair so a repeated add
// merges into the existing row instead of duplicating it.
func (o *Order) FindItemByProduct(productID string, variantID *string) *OrderItem {
	for i := range o.Items {
		it := &o.Items[i]
		if it.ProductID != productID {
			continue
		}
		if (it.VariantID == nil) != (variantID == nil) {
			continue
		}
		if it.VariantID == nil || *it.VariantID == *variantID {
			return it
		}
	}
	return nil
}
