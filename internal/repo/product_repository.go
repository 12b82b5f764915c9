package repo

import "github.com/glowdesk/glowdesk/internal/models"

// ProductRepository defines the interface for inventory operations.
type ProductRepository interface {
	Create(p models.Product) (models.Product, error)
	GetByID(id string) (models.Product, error)
	Update(id string, patch ProductPatch) (models.Product, error)
	Delete(id string) error
	Filter(f ProductFilter) ([]models.Product, int, error)
	// AdjustStock applies a signed delta to the current stock in a single
	// statement and refuses changes that would drive it negative.
	AdjustStock(id string, delta int) (models.Product, error)
}

type ProductFilter struct {
	Name         string
	Category     string
	LowStockOnly bool
	Offset       *int
	Limit        *int
}

type ProductPatch struct {
	Name     *string
	Price    *string
	Cost     *string
	MinStock *int
	Category *string
	Supplier *string
	Barcode  *string
}
