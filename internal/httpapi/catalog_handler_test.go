package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

func newCatalogHandler(catalog *catalogMock, creator *creatorMock, sessions *sessionsMock) *CatalogHandler {
	return NewCatalogHandler(catalog, creator, sessions, 5*time.Second, zerolog.Nop())
}

func merchantSessions() *sessionsMock {
	return &sessionsMock{user: &domain.User{ID: "merchant-1", Role: domain.RoleMerchant}}
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	catalog := &catalogMock{products: []domain.Product{testProduct("p1", "Starter Pack", "49.99")}}
	sut := newCatalogHandler(catalog, &creatorMock{}, &sessionsMock{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/products", nil)

	sut.ListProducts(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response []domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "p1", response[0].ID)
}

func TestCatalogHandler_CreateProduct(t *testing.T) {
	catalog := &catalogMock{}
	creator := &creatorMock{}
	sut := newCatalogHandler(catalog, creator, merchantSessions())

	input := domain.ProductInput{
		Title: "New Pack",
		Price: decimal.RequireFromString("30"),
		Type:  domain.ProductTypePackage,
	}
	body, _ := json.Marshal(input)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))

	sut.CreateProduct(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Len(t, creator.created, 1)
	assert.Equal(t, "merchant-1", creator.created[0].SellerID)
	require.Len(t, catalog.added, 1)
	assert.Equal(t, "New Pack", catalog.added[0].Title)
}

func TestCatalogHandler_CreateProduct_CustomerForbidden(t *testing.T) {
	sessions := &sessionsMock{user: &domain.User{ID: "u1", Role: domain.RoleCustomer}}
	creator := &creatorMock{}
	sut := newCatalogHandler(&catalogMock{}, creator, sessions)

	body, _ := json.Marshal(domain.ProductInput{Title: "Nope", Type: domain.ProductTypePackage})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))

	sut.CreateProduct(recorder, request)

	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Empty(t, creator.created)
}

func TestCatalogHandler_CreateProduct_Unauthenticated(t *testing.T) {
	sut := newCatalogHandler(&catalogMock{}, &creatorMock{}, &sessionsMock{})

	body, _ := json.Marshal(domain.ProductInput{Title: "Nope", Type: domain.ProductTypePackage})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))

	sut.CreateProduct(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCatalogHandler_CreateProduct_InvalidType(t *testing.T) {
	sut := newCatalogHandler(&catalogMock{}, &creatorMock{}, merchantSessions())

	body, _ := json.Marshal(map[string]any{"title": "Odd", "type": "mystery"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))

	sut.CreateProduct(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
