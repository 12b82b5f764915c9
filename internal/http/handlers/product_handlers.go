package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/alerts"
	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/models"
	"github.com/glowdesk/glowdesk/internal/repo"
)

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Cost:       p.Cost,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		Category:   p.Category,
		Supplier:   p.Supplier,
		Barcode:    p.Barcode,
		SalesCount: p.SalesCount,
		LowStock:   p.LowStock(),
	}
}

// CreateProductHandler godoc
// @Summary Add a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} dataEnvelope
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateProduct(req); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	minStock := models.DefaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	now := time.Now().UTC()
	product := models.Product{
		Name:      req.Name,
		Price:     req.Price,
		Cost:      req.Cost,
		Stock:     req.Stock,
		MinStock:  minStock,
		Category:  req.Category,
		Supplier:  req.Supplier,
		Barcode:   req.Barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := productRepo.Create(product)
	if err != nil {
		logger.Error("could not create product", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyProducts)
	writeJSON(w, http.StatusCreated, dataEnvelope{Data: productResponse(created)})
}

// GetProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param name query string false "Substring match on name"
// @Param category query string false "Exact category match"
// @Param lowStock query bool false "Only products below their threshold"
// @Success 200 {object} listEnvelope
// @Failure 500 {object} map[string]string
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		Name:         q.Get("name"),
		Category:     q.Get("category"),
		LowStockOnly: q.Get("lowStock") == "true",
	}

	unfiltered := filter.Name == "" && filter.Category == "" && !filter.LowStockOnly
	if unfiltered {
		var cached listEnvelope
		if cacheSvc.Get(r.Context(), cache.KeyProducts, &cached) {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		logger.Error("could not fetch products", "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, productResponse(p))
	}

	response := listEnvelope{Data: responses, Meta: Meta{TotalCount: total}}
	if unfiltered {
		cacheSvc.Set(r.Context(), cache.KeyProducts, response)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dataEnvelope
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		logger.Error("could not fetch product", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: productResponse(product)})
}

// UpdateProductHandler godoc
// @Summary Partially update a product
// @Description Stock is not writable here; use the stock adjustment endpoint.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body ProductUpdateRequest true "Fields to update"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [patch]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if req.Price != nil && !validDecimal(*req.Price) {
		writeError(w, http.StatusBadRequest, "price must be a decimal string")
		return
	}
	if req.Cost != nil && *req.Cost != "" && !validDecimal(*req.Cost) {
		writeError(w, http.StatusBadRequest, "cost must be a decimal string")
		return
	}
	if req.MinStock != nil && *req.MinStock < 0 {
		writeError(w, http.StatusBadRequest, "min_stock cannot be negative")
		return
	}

	patch := repo.ProductPatch{
		Name:     req.Name,
		Price:    req.Price,
		Cost:     req.Cost,
		MinStock: req.MinStock,
		Category: req.Category,
		Supplier: req.Supplier,
		Barcode:  req.Barcode,
	}

	updated, err := productRepo.Update(id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		logger.Error("could not update product", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not update product")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyProducts)
	writeJSON(w, http.StatusOK, dataEnvelope{Data: productResponse(updated)})
}

// DeleteProductHandler godoc
// @Summary Remove a product from the inventory
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		logger.Error("could not delete product", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyProducts)
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStockHandler godoc
// @Summary Adjust product stock by a signed delta
// @Description A negative delta records a sale and bumps the sales counter.
// @Description Changes that would drive stock negative are rejected.
// @Tags products
// @Accept json
// @Produce json
// @Param adjustment body StockAdjustmentRequest true "Adjustment to apply"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/products/stock [patch]
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	var req StockAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if _, err := uuid.Parse(req.ProductID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	if req.Delta == 0 {
		writeError(w, http.StatusBadRequest, "delta cannot be zero")
		return
	}

	adjusted, err := productRepo.AdjustStock(req.ProductID, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrInvalidStockChange):
			writeError(w, http.StatusConflict, "stock cannot go negative")
		default:
			logger.Error("could not adjust stock", "id", req.ProductID, "err", err)
			writeError(w, http.StatusInternalServerError, "could not adjust stock")
		}
		return
	}

	if adjusted.LowStock() {
		alerts.LowStock(adjusted)
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyProducts)
	writeJSON(w, http.StatusOK, dataEnvelope{Data: productResponse(adjusted)})
}
