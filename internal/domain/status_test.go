package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusEditable(t *testing.T) {
	editable := map[OrderStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusShipped:   false,
		StatusDelivered: false,
		StatusCancelled: false,
	}

	for status, want := range editable {
		assert.Equal(t, want, status.Editable(), "status %s", status)
		// cancellation is allowed from exactly the editable states
		assert.Equal(t, want, status.Cancellable(), "status %s", status)
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentStatusValid(t *testing.T) {
	assert.True(t, PaymentPaid.Valid())
	assert.False(t, PaymentStatus("chargeback").Valid())
}

func TestOrderFindItemByProduct(t *testing.T) {
	v1 := "V1"
	o := &Order{Items: []OrderItem{
		{ID: "I1", ProductID: "P1"},
		{ID: "I2", ProductID: "P1", VariantID: &v1},
	}}

	assert.Equal(t, "I1", o.FindItemByProduct("P1", nil).ID)

	other := "V1"
	assert.Equal(t, "I2", o.FindItemByProduct("P1", &other).ID)

	missing := "V2"
	assert.Nil(t, o.FindItemByProduct("P1", &missing))
	assert.Nil(t, o.FindItemByProduct("P2", nil))
}
