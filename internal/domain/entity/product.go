package entity

import (
	"time"
)

// Variant is a distinct purchasable configuration of a product, with its own
// SKU, price, stock and image set. Price is a pointer because legacy records
// predate the absolute-price field: they carry PriceDifference (a delta from a
// historical base price) instead. The draft engine resolves the two at the
// fetch boundary; records written by this service always carry Price.
type Variant struct {
	ID        string   `json:"id,omitempty" firestore:"id,omitempty"`
	Name      string   `json:"name" firestore:"name"`
	SKU       string   `json:"sku" firestore:"sku"`
	Price     *float64 `json:"price,omitempty" firestore:"price,omitempty"`
	Stock     int      `json:"stock" firestore:"stock"`
	Images    []string `json:"images" firestore:"images"`
	IsDefault bool     `json:"isDefault" firestore:"isDefault"`

	// Legacy, read-only. Never written back.
	PriceDifference *float64 `json:"priceDifference,omitempty" firestore:"priceDifference,omitempty"`
}

// Product is the persisted catalog record and, field for field, the outbound
// create/update payload. A product is either variant-priced (Variants
// non-empty, Images empty, Stock nil) or simple-priced (no variants, global
// Images and Stock carry the product directly).
type Product struct {
	ID          string            `json:"id,omitempty" firestore:"id,omitempty"`
	Name        string            `json:"name" firestore:"name"`
	Slug        string            `json:"slug" firestore:"slug"`
	Description string            `json:"description" firestore:"description"`
	Brand       string            `json:"brand,omitempty" firestore:"brand,omitempty"`
	Images      []string          `json:"images" firestore:"images"`
	IsFeatured  bool              `json:"isFeatured" firestore:"isFeatured"`
	Specs       map[string]string `json:"specs,omitempty" firestore:"specs,omitempty"`
	Variants    []Variant         `json:"variants,omitempty" firestore:"variants,omitempty"`
	BasePrice   float64           `json:"basePrice,omitempty" firestore:"basePrice"`
	Stock       *int              `json:"stock,omitempty" firestore:"stock,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// UnitPrice resolves a variant's absolute price, tolerating legacy records
// that only carry the delta field: price, else priceDifference, else 0.
func (v *Variant) UnitPrice() float64 {
	if v.Price != nil {
		return *v.Price
	}
	if v.PriceDifference != nil {
		return *v.PriceDifference
	}
	return 0
}
