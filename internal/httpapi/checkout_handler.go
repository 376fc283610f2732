package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtz196822-maker/digistore-araby/internal/checkout"
)

// Checkouter runs a single checkout attempt.
type Checkouter interface {
	Checkout(ctx context.Context, req checkout.Request) (*checkout.Result, error)
	Status() checkout.Status
}

type CheckoutHandler struct {
	checkout Checkouter
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewCheckoutHandler(c Checkouter, timeout time.Duration, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: c,
		timeout:  timeout,
		logger:   logger,
	}
}

type CheckoutRequestDTO struct {
	PromoCode     string `json:"promo_code,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	result, err := h.checkout.Checkout(ctx, checkout.Request{
		PromoCode:     req.PromoCode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("request_id", getRequestID(r.Context())).Msg("checkout rejected")
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]checkout.Status{"status": h.checkout.Status()})
}
