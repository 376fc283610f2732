package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusRefunded   OrderStatus = "refunded"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusRefunded
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether an order status transition is legal.
func CanTransitionTo(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCompleted || to == OrderStatusFailed
	case OrderStatusProcessing:
		return to == OrderStatusCompleted || to == OrderStatusFailed
	case OrderStatusCompleted:
		return to == OrderStatusRefunded
	default:
		return false
	}
}

// Order is created server-side; the client only submits the creation
// request and a subsequent status update.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Status         OrderStatus     `json:"status"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	PaymentID      string          `json:"payment_id,omitempty"`
	PromoCodeUsed  string          `json:"promo_code_used,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type OrderInput struct {
	UserID         string          `json:"user_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	PromoCodeUsed  string          `json:"promo_code_used,omitempty"`

	// IdempotencyKey travels as a request header, not in the row payload.
	IdempotencyKey string `json:"-"`
}
