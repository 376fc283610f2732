package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// Catalog is the read side served from the local cache.
type Catalog interface {
	Products() []domain.Product
	News() []domain.NewsItem
	Filter(query, productType string) []domain.Product
	Add(p domain.Product)
}

// ProductCreator is the backend slice used for merchant listings.
type ProductCreator interface {
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
}

type CatalogHandler struct {
	catalog  Catalog
	creator  ProductCreator
	sessions Sessions
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCatalogHandler(catalog Catalog, creator ProductCreator, sessions Sessions, timeout time.Duration, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		creator:  creator,
		sessions: sessions,
		timeout:  timeout,
		logger:   logger,
	}
}

// ListProducts serves the cached catalog, optionally narrowed by a
// text query and a product type.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	productType := r.URL.Query().Get("type")

	products := h.catalog.Filter(query, productType)
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.News())
}

// CreateProduct lists a new product on behalf of the signed-in
// merchant and makes it visible in the local catalog immediately.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user := h.sessions.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in to list products")
		return
	}
	if user.Role != domain.RoleMerchant && user.Role != domain.RoleAdmin {
		respondError(w, http.StatusForbidden, "merchant_only", "only merchants can list products")
		return
	}

	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if input.Title == "" {
		respondError(w, http.StatusBadRequest, "invalid_title", "title is required")
		return
	}
	if input.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}
	if !input.Type.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_type", "unknown product type")
		return
	}

	input.SellerID = user.ID

	product, err := h.creator.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", getRequestID(r.Context())).Msg("product creation failed")
		handleDomainError(w, err)
		return
	}

	h.catalog.Add(*product)
	respondJSON(w, http.StatusCreated, product)
}
