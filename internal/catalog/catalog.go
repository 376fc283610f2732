// Package catalog is the client-side snapshot of products and news,
// fetched once per session and filtered locally.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// FilterAll matches every product type.
const FilterAll = "all"

// Backend is the slice of the backend this cache consumes.
// Consumers define this interface, not the backend implementation.
type Backend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListNews(ctx context.Context) ([]domain.NewsItem, error)
}

type Cache struct {
	backend Backend
	logger  zerolog.Logger
	sfg     singleflight.Group // collapses concurrent loads into one fetch

	mu       sync.RWMutex
	products []domain.Product
	news     []domain.NewsItem
	loaded   bool
}

func New(svc Backend, logger zerolog.Logger) *Cache {
	return &Cache{backend: svc, logger: logger}
}

// Load fetches products and news once. Empty or failed fetches fall
// back to the built-in catalog; failures are logged, never fatal.
func (c *Cache) Load(ctx context.Context) {
	c.sfg.Do("load", func() (interface{}, error) {
		if c.Loaded() {
			return nil, nil
		}
		products, err := c.backend.ListProducts(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("product fetch failed, using built-in catalog")
		}
		if len(products) == 0 {
			products = defaultProducts()
		}

		news, err := c.backend.ListNews(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("news fetch failed, using built-in news")
		}
		if len(news) == 0 {
			news = defaultNews()
		}

		c.mu.Lock()
		c.products = products
		c.news = news
		c.loaded = true
		c.mu.Unlock()
		return nil, nil
	})
}

// Loaded reports whether the initial fetch has settled.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) News() []domain.NewsItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.NewsItem, len(c.news))
	copy(out, c.news)
	return out
}

// Filter runs a case-insensitive substring match on title and
// description, combined with an exact type filter ("all" or empty
// matches every type). Pure and synchronous; never re-fetches.
func (c *Cache) Filter(query, productType string) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	matchAll := productType == "" || productType == FilterAll

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if !matchAll && string(p.Type) != productType {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Add prepends a freshly listed product so the merchant sees it
// immediately without a refetch.
func (c *Cache) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append([]domain.Product{p}, c.products...)
}
