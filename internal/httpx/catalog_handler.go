package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/akshayam/wellness-store.git/internal/catalog"
	"github.com/akshayam/wellness-store.git/internal/redisx"
)

type CatalogHandler struct {
	Repo      *catalog.Repo
	Validator *catalog.StockValidator
	Redis     *redis.Client
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/products/{id}/stock", h.getStock)
	r.Get("/categories", h.listCategories)
	r.Post("/validate-stock", h.validateStock)
}

func (h *CatalogHandler) RegisterAdmin(r chi.Router) {
	r.Post("/products", h.createProduct)
	r.Put("/products/reorder", h.reorderProducts)
	r.Put("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)

	r.Post("/categories", h.createCategory)
	r.Put("/categories/reorder", h.reorderCategories)
	r.Put("/categories/{id}", h.updateCategory)
	r.Delete("/categories/{id}", h.deleteCategory)
}

func catalogErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidID):
		writeErr(w, http.StatusBadRequest, "Invalid product ID")
	case errors.Is(err, catalog.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	default:
		writeErr(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Repo.ListProducts(r.Context(), r.URL.Query().Get("category_id"))
	if err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Repo.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// getStock serves the stock level cache-first; the inventory worker keeps
// the cache warm from the order event stream.
func (h *CatalogHandler) getStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	key := fmt.Sprintf(redisx.KeyProductStock, id)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil {
		if q, err := strconv.Atoi(s); err == nil {
			writeJSON(w, http.StatusOK, map[string]any{"product_id": id, "quantity": q, "cached": true})
			return
		}
	}

	p, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		catalogErr(w, err)
		return
	}
	_ = h.Redis.Set(ctx, key, p.Quantity, redisx.TTLStockCache).Err()
	writeJSON(w, http.StatusOK, map[string]any{"product_id": id, "quantity": p.Quantity, "cached": false})
}

type validateStockReq struct {
	Items []catalog.StockRequestItem `json:"items"`
}

// validateStock always answers 200; the verdict is in the body so the
// storefront can render per-item problems.
func (h *CatalogHandler) validateStock(w http.ResponseWriter, r *http.Request) {
	var req validateStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.Validator.Validate(r.Context(), req.Items)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p.Name == "" || p.CategoryID == "" {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}
	if err := h.Repo.CreateProduct(r.Context(), &p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusBadRequest, "Invalid category ID")
			return
		}
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var upd catalog.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.Repo.UpdateProduct(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

type reorderReq struct {
	Items []catalog.ReorderItem `json:"items"`
}

func (h *CatalogHandler) reorderProducts(w http.ResponseWriter, r *http.Request) {
	var req reorderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Repo.ReorderProducts(r.Context(), req.Items); err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Products reordered successfully"})
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Repo.ListCategories(r.Context())
	if err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CatalogHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var c catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if c.Name == "" {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}
	if err := h.Repo.CreateCategory(r.Context(), &c); err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var upd catalog.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := h.Repo.UpdateCategory(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	err := h.Repo.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidID) || errors.Is(err, catalog.ErrNotFound) {
			catalogErr(w, err)
			return
		}
		// still-referenced category
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func (h *CatalogHandler) reorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Repo.ReorderCategories(r.Context(), req.Items); err != nil {
		catalogErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Categories reordered successfully"})
}
