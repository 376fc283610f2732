package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/checkout"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError converts sentinel errors from the storefront core
// into HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, checkout.ErrNotAuthenticated), errors.Is(err, backend.ErrNoSession):
		httpStatus = http.StatusUnauthorized
		code = "unauthenticated"
	case errors.Is(err, backend.ErrAuthFailed):
		httpStatus = http.StatusUnauthorized
		code = "invalid_credentials"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus = http.StatusBadRequest
		code = "empty_cart"
	case errors.Is(err, checkout.ErrPromoRejected):
		httpStatus = http.StatusBadRequest
		code = "promo_rejected"
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		httpStatus = http.StatusConflict
		code = "checkout_in_flight"
	case errors.Is(err, backend.ErrNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, backend.ErrUnavailable):
		httpStatus = http.StatusBadGateway
		code = "backend_unavailable"
	default:
		httpStatus = http.StatusInternalServerError
		code = "internal_error"
	}

	respondError(w, httpStatus, code, err.Error())
}
