package repo

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/models"
)

type InMemoryProductRepository struct {
	products []models.Product
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: []models.Product{}}
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	p.ID = uuid.NewString()
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) GetByID(id string) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(id string, patch ProductPatch) (models.Product, error) {
	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Cost != nil {
			p.Cost = *patch.Cost
		}
		if patch.MinStock != nil {
			p.MinStock = *patch.MinStock
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Supplier != nil {
			p.Supplier = *patch.Supplier
		}
		if patch.Barcode != nil {
			p.Barcode = *patch.Barcode
		}
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	var matched []models.Product
	for _, p := range r.products {
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.LowStockOnly && !p.LowStock() {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= len(matched) {
			return []models.Product{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

func (r *InMemoryProductRepository) AdjustStock(id string, delta int) (models.Product, error) {
	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		if p.Stock+delta < 0 {
			return models.Product{}, ErrInvalidStockChange
		}
		p.Stock += delta
		if delta < 0 {
			p.SalesCount += -delta
		}
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

// All returns the current contents, used by the in-memory dashboard repository.
func (r *InMemoryProductRepository) All() []models.Product {
	return r.products
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
}
