package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductTypePackage      ProductType = "package"
	ProductTypeDigital      ProductType = "digital_product"
	ProductTypeSubscription ProductType = "subscription"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypePackage, ProductTypeDigital, ProductTypeSubscription:
		return true
	}
	return false
}

type Product struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Type          ProductType     `json:"type"`
	Category      string          `json:"category,omitempty"`
	ImageURL      string          `json:"image_url"`
	SellerID      string          `json:"seller_id,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductInput is the payload for a merchant-initiated listing.
type ProductInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Type        ProductType     `json:"type"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url"`
	SellerID    string          `json:"seller_id"`
}
