package model

import "github.com/shopspring/decimal"

// Product represents an item in the storefront catalogue.
type Product struct {
	ID            int              `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty" db:"original_price"`
	Description   string           `json:"description" db:"description"`
	Category      string           `json:"category,omitempty" db:"category"`
	Subcategory   string           `json:"subcategory,omitempty" db:"subcategory"`
	Warning       string           `json:"warning,omitempty" db:"warning"`
	ImageURL      string           `json:"imageUrl,omitempty" db:"image_url"`
}

// OnSale reports whether the product carries a discount over its original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// ProductGroup is a named, ordered group of products used by listing views.
type ProductGroup struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// CategoryView is the drilldown listing for a single category.
type CategoryView struct {
	Category      string         `json:"category"`
	Subcategories []string       `json:"subcategories"`
	Groups        []ProductGroup `json:"groups"`
}
