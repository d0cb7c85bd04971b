package transport

import (
	"net/http"

	"purenest-be/internal/logger"
	"purenest-be/internal/product"

	"go.uber.org/zap"
)

type ProductHandler struct {
	repo product.Repository
}

func NewProductHandler(repo product.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	products, total, err := h.repo.ListProducts(r.Context(), product.ListOptions{
		Category:   r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("search"),
		OnlyActive: true,
		Limit:      limit,
		Page:       page,
	})
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{
		"products":   products,
		"pagination": buildPagination(page, limit, total),
	})
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetProductByID(r.Context(), product.GetProductOptions{
		ProductID:  r.PathValue("id"),
		OnlyActive: true,
	})
	if err != nil {
		logger.FromCtx(r.Context()).Error("get product failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, product.ErrProductNotFound.Error())
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{"product": p})
}
