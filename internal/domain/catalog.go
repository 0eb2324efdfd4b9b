package domain

import (
	"sort"
	"strings"
	"time"
)

// Product carries the base price and its own stock counter. Variants, when
// present, carry independent counters and may override the price.
type Product struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Price     int64     `json:"price" gorm:"not null"`
	Stock     int       `json:"stock" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

type ProductVariant struct {
	ID        string `json:"id" gorm:"type:char(36);primaryKey"`
	ProductID string `json:"productId" gorm:"type:char(36);index;not null"`
	// Price overrides the product price when set.
	Price           *int64                  `json:"price"`
	Stock           int                     `json:"stock" gorm:"not null"`
	AttributeValues []VariantAttributeValue `json:"attributeValues" gorm:"foreignKey:VariantID"`
}

// VariantAttributeValue is one axis of a variant's combination, e.g.
// Color=Blue. Position is the defining attribute's display position and
// drives the label ordering.
type VariantAttributeValue struct {
	ID        string `json:"id" gorm:"type:char(36);primaryKey"`
	VariantID string `json:"variantId" gorm:"type:char(36);index;not null"`
	Value     string `json:"value" gorm:"size:128;not null"`
	Position  int    `json:"position" gorm:"not null"`
}

// EffectivePrice is the variant price when set, else the product price.
func (v *ProductVariant) EffectivePrice(p *Product) int64 {
	if v.Price != nil {
		return *v.Price
	}
	return p.Price
}

// DisplayName joins the attribute values by ascending display position,
// e.g. "Blue / XL". Ties keep their stored order.
func (v *ProductVariant) DisplayName() string {
	if len(v.AttributeValues) == 0 {
		return ""
	}
	vals := make([]VariantAttributeValue, len(v.AttributeValues))
	copy(vals, v.AttributeValues)
	sort.SliceStable(vals, func(i, j int) bool {
		return vals[i].Position < vals[j].Position
	})
	parts := make([]string, len(vals))
	for i, av := range vals {
		parts[i] = av.Value
	}
	return strings.Join(parts, " / ")
}
