package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// CartAPI is the cart surface exposed over HTTP.
type CartAPI interface {
	Cart() domain.Cart
	AddItem(ctx context.Context, product domain.Product)
	UpdateQuantity(ctx context.Context, productID string, delta int)
	RemoveItem(ctx context.Context, productID string)
	TotalItemCount() int
}

type CartHandler struct {
	cart    CartAPI
	catalog Catalog
}

func NewCartHandler(cart CartAPI, catalog Catalog) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type CartResponseDTO struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, ok := h.lookupProduct(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "unknown product")
		return
	}

	h.cart.AddItem(r.Context(), product)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must not be zero")
		return
	}

	h.cart.UpdateQuantity(r.Context(), productID, req.Delta)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	h.cart.RemoveItem(r.Context(), productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) lookupProduct(id string) (domain.Product, bool) {
	for _, p := range h.catalog.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	cart := h.cart.Cart()
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponseDTO{
		Items:     items,
		ItemCount: cart.ItemCount(),
	}
}
