package models

import "time"

// Product represents a retail item in the salon inventory. Price and Cost are
// kept as decimal strings, matching the text-typed columns the store has
// always used for them.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Cost       string    `json:"cost,omitempty"`
	Stock      int       `json:"stock"`
	MinStock   int       `json:"min_stock"`
	Category   string    `json:"category,omitempty"`
	Supplier   string    `json:"supplier,omitempty"`
	Barcode    string    `json:"barcode,omitempty"`
	SalesCount int       `json:"sales_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultMinStock is applied when a product is created without a threshold.
const DefaultMinStock = 5

// LowStock reports whether the product is below its restock threshold.
// The boundary is strict: stock equal to the threshold is not flagged.
func (p Product) LowStock() bool {
	return p.Stock < p.MinStock
}
