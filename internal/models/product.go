package models

import "github.com/shopspring/decimal"

// NameMaxLen mirrors the VARCHAR(50) bound of the product.name column.
const NameMaxLen = 50

// Product represents a product entity in the inventory system.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// IsLowStock reports whether the product is at or below the given threshold.
func (p Product) IsLowStock(threshold int) bool {
	return p.Quantity <= threshold
}
