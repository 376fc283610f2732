package domain

import "time"

type NewsType string

const (
	NewsTypeOffer   NewsType = "offer"
	NewsTypeUpdate  NewsType = "update"
	NewsTypeAlert   NewsType = "alert"
	NewsTypeGeneral NewsType = "general"
)

type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Type        NewsType  `json:"type"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
