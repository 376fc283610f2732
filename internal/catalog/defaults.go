package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// Built-in catalog shown when the backend returns nothing. The shop
// must never render empty and unrecoverable.

func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Title:       "Pro Designer Bundle",
			Description: "Arabic font collection and high resolution vector icon packs.",
			Price:       decimal.RequireFromString("49.99"),
			Type:        domain.ProductTypePackage,
			SellerID:    "merchant_1",
			ImageURL:    "https://picsum.photos/400/400?random=1",
			IsActive:    true,
		},
		{
			ID:          "2",
			Title:       "Advanced React Course",
			Description: "A complete course on React with TypeScript.",
			Price:       decimal.RequireFromString("120.00"),
			Type:        domain.ProductTypeDigital,
			SellerID:    "merchant_1",
			ImageURL:    "https://picsum.photos/400/400?random=2",
			IsActive:    true,
		},
		{
			ID:          "3",
			Title:       "Business Website Template",
			Description: "Ready-made HTML/CSS template with full RTL support.",
			Price:       decimal.RequireFromString("25.50"),
			Type:        domain.ProductTypeDigital,
			SellerID:    "merchant_2",
			ImageURL:    "https://picsum.photos/400/400?random=3",
			IsActive:    true,
		},
		{
			ID:          "4",
			Title:       "Marketing Bundle",
			Description: "Ready-to-use marketing plans and social media posts.",
			Price:       decimal.RequireFromString("75.00"),
			Type:        domain.ProductTypePackage,
			SellerID:    "merchant_2",
			ImageURL:    "https://picsum.photos/400/400?random=4",
			IsActive:    true,
		},
	}
}

func defaultNews() []domain.NewsItem {
	now := time.Now()
	return []domain.NewsItem{
		{
			ID:          "1",
			Title:       "Special 50% Discount",
			Content:     "Get 50% off all bundles until the end of the week.",
			Type:        domain.NewsTypeOffer,
			IsPublished: true,
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "Platform Update",
			Content:     "New payment methods were added to make purchasing easier.",
			Type:        domain.NewsTypeUpdate,
			IsPublished: true,
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Title:       "Maintenance Notice",
			Content:     "Scheduled maintenance is planned for next Friday.",
			Type:        domain.NewsTypeAlert,
			IsPublished: true,
			CreatedAt:   now,
		},
	}
}
