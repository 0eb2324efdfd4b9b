package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantDisplayName_OrdersByAttributePosition(t *testing.T) {
	v := &ProductVariant{
		AttributeValues: []VariantAttributeValue{
			{Value: "M", Position: 1},
			{Value: "Blue", Position: 0},
		},
	}

	assert.Equal(t, "Blue / M", v.DisplayName())
}

func TestVariantDisplayName_TiesKeepInputOrder(t *testing.T) {
	v := &ProductVariant{
		AttributeValues: []VariantAttributeValue{
			{Value: "Cotton", Position: 2},
			{Value: "Slim", Position: 2},
		},
	}

	assert.Equal(t, "Cotton / Slim", v.DisplayName())
}

func TestVariantDisplayName_NoAttributes(t *testing.T) {
	v := &ProductVariant{}
	assert.Equal(t, "", v.DisplayName())
}

func TestVariantEffectivePrice(t *testing.T) {
	p := &Product{Price: 10000}

	override := int64(12000)
	assert.Equal(t, int64(12000), (&ProductVariant{Price: &override}).EffectivePrice(p))
	assert.Equal(t, int64(10000), (&ProductVariant{}).EffectivePrice(p))
}
