package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleMerchant UserRole = "merchant"
	RoleAdmin    UserRole = "admin"
)

// User is the read-only cached copy of a profile owned by the backend.
type User struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          UserRole        `json:"role"`
	AvatarURL     string          `json:"avatar_url,omitempty"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
