// Package checkout converts the cart into a submitted order against
// the backend of record.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/domain"
	"github.com/mtz196822-maker/digistore-araby/internal/notify"
	"github.com/mtz196822-maker/digistore-araby/internal/pricing"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusFinalizing Status = "finalizing"
	StatusRejected   Status = "rejected"
)

// OrderBackend is the order slice of the backend this orchestrator
// consumes.
type OrderBackend interface {
	CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
	ValidatePromoCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*backend.PromoValidation, error)
}

type Sessions interface {
	CurrentUser() *domain.User
}

type CartStore interface {
	Cart() domain.Cart
	Clear(ctx context.Context)
}

type Request struct {
	PromoCode     string
	PaymentMethod string
}

type Result struct {
	Order  *domain.Order
	Totals pricing.Totals
}

type Orchestrator struct {
	backend  OrderBackend
	cart     CartStore
	sessions Sessions
	policy   CompletionPolicy
	notifier notify.Notifier
	logger   zerolog.Logger

	mu       sync.Mutex
	inFlight bool
	status   Status
}

func NewOrchestrator(b OrderBackend, cart CartStore, sessions Sessions, policy CompletionPolicy, notifier notify.Notifier, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		backend:  b,
		cart:     cart,
		sessions: sessions,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
		status:   StatusIdle,
	}
}

// Status reports the current stage for the UI.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *Orchestrator) setStatus(s Status) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// Checkout runs one attempt end to end. Only one attempt may be in
// flight at a time; concurrent calls are rejected, never interleaved.
// A failed attempt leaves the cart exactly as it was.
func (o *Orchestrator) Checkout(ctx context.Context, req Request) (*Result, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	o.inFlight = true
	o.status = StatusValidating
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.status = StatusIdle
		o.mu.Unlock()
	}()

	user := o.sessions.CurrentUser()
	if user == nil {
		o.setStatus(StatusRejected)
		return nil, ErrNotAuthenticated
	}

	cart := o.cart.Cart()
	if cart.IsEmpty() {
		o.setStatus(StatusRejected)
		o.notifier.Notify("Your cart is empty", notify.SeverityError)
		return nil, ErrEmptyCart
	}

	totals := pricing.Compute(cart, decimal.Zero)

	if req.PromoCode != "" {
		validation, err := o.backend.ValidatePromoCode(ctx, req.PromoCode, totals.Subtotal)
		if err != nil {
			o.setStatus(StatusRejected)
			o.notifier.Notify("Could not verify the promo code, please try again", notify.SeverityError)
			return nil, fmt.Errorf("validate promo code: %w", err)
		}
		if !validation.Valid {
			o.setStatus(StatusRejected)
			o.notifier.Notify(validation.Reason, notify.SeverityError)
			return nil, fmt.Errorf("%w: %s", ErrPromoRejected, validation.Reason)
		}
		totals = pricing.Compute(cart, validation.Discount)
	}

	o.setStatus(StatusSubmitting)
	o.notifier.Notify("Processing your order...", notify.SeverityInfo)

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "manual"
	}

	order, err := o.backend.CreateOrder(ctx, domain.OrderInput{
		UserID:         user.ID,
		TotalAmount:    totals.Subtotal,
		TaxAmount:      totals.Tax,
		DiscountAmount: totals.Discount,
		FinalAmount:    totals.Final,
		PaymentMethod:  paymentMethod,
		PromoCodeUsed:  req.PromoCode,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		// Cart untouched; the attempt is safely abandonable.
		o.setStatus(StatusRejected)
		o.logger.Error().Err(err).Str("user_id", user.ID).Msg("order creation failed")
		o.notifier.Notify("Something went wrong while processing your order", notify.SeverityError)
		return nil, fmt.Errorf("create order: %w", err)
	}

	o.setStatus(StatusFinalizing)
	if err := o.policy.Finalize(ctx, o.backend, order); err != nil {
		// Best effort: the order exists either way, and the backend
		// reconciles stragglers. Never blocks cart clearing.
		o.logger.Warn().Err(err).Str("order_id", order.ID).Msg("order completion failed")
	}

	o.cart.Clear(ctx)
	o.notifier.Notify("Your order was received successfully!", notify.SeveritySuccess)

	return &Result{Order: order, Totals: totals}, nil
}
