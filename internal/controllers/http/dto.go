package http

type CreateOrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID *string `json:"variantId"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice int64   `json:"unitPrice" binding:"required,min=0"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string                   `json:"shippingAddress" binding:"required"`
	BillingAddress  string                   `json:"billingAddress"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"required"`
	ShippingFee     int64                    `json:"shippingFee" binding:"min=0"`
	Discount        int64                    `json:"discount" binding:"min=0"`
	Notes           string                   `json:"notes"`
	UserID          *string                  `json:"userId"`
}

type AddItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID *string `json:"variantId"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	Notes         *string `json:"notes"`
}
