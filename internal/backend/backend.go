// Package backend is the port to the managed backend of record:
// identity, catalog data, and order persistence all live behind it.
package backend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

var (
	// ErrUnavailable covers any transport or service failure.
	ErrUnavailable = errors.New("backend unavailable")
	ErrNotFound    = errors.New("not found")
	ErrNoSession   = errors.New("no active session")
	ErrAuthFailed  = errors.New("authentication failed")
)

type Session struct {
	UserID      string    `json:"user_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

type AuthEventType string

const (
	AuthEventSignedIn  AuthEventType = "SIGNED_IN"
	AuthEventSignedOut AuthEventType = "SIGNED_OUT"
)

type AuthEvent struct {
	Type   AuthEventType
	UserID string
}

// PromoValidation is the outcome of a server-validated discount token.
// Reason is set when Valid is false.
type PromoValidation struct {
	Valid    bool
	Discount decimal.Decimal
	Reason   string
}

// Service is the set of backend operations the storefront consumes.
type Service interface {
	CurrentSession(ctx context.Context) (*Session, error)
	UserProfile(ctx context.Context, userID string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	Subscribe() *Subscription

	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListNews(ctx context.Context) ([]domain.NewsItem, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)

	CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error

	ValidatePromoCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*PromoValidation, error)
}

// Subscription delivers auth-state transitions until Unsubscribe is
// called, which also closes the event channel.
type Subscription struct {
	events chan AuthEvent
	once   sync.Once
	cancel func()
}

// NewSubscription wires a subscription to its producer. The cancel
// callback must stop further Publish calls before it returns; the
// event channel is closed right after.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{
		events: make(chan AuthEvent, 16),
		cancel: cancel,
	}
}

func (s *Subscription) Events() <-chan AuthEvent {
	return s.events
}

// Publish delivers an event without blocking; a full buffer drops the
// event rather than stalling the producer.
func (s *Subscription) Publish(ev AuthEvent) bool {
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		close(s.events)
	})
}
