package httpapi

import (
	"context"
	"sync"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/checkout"
	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

type catalogMock struct {
	mu       sync.Mutex
	products []domain.Product
	news     []domain.NewsItem
	added    []domain.Product
}

func (c *catalogMock) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Product(nil), c.products...)
}

func (c *catalogMock) News() []domain.NewsItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.NewsItem(nil), c.news...)
}

func (c *catalogMock) Filter(query, productType string) []domain.Product {
	return c.Products()
}

func (c *catalogMock) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, p)
	c.products = append([]domain.Product{p}, c.products...)
}

type cartMock struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func (c *cartMock) Cart() domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Cart{Items: append([]domain.CartItem(nil), c.items...)}
}

func (c *cartMock) AddItem(_ context.Context, product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.CartItem{Product: product, Quantity: 1})
}

func (c *cartMock) UpdateQuantity(_ context.Context, productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == productID {
			q := c.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.items[i].Quantity = q
		}
	}
}

func (c *cartMock) RemoveItem(_ context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *cartMock) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

type sessionsMock struct {
	user *domain.User
}

func (s *sessionsMock) CurrentUser() *domain.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *sessionsMock) IsAuthenticated() bool {
	return s.user != nil
}

type checkoutMock struct {
	result *checkout.Result
	err    error
	status checkout.Status
	calls  int
}

func (c *checkoutMock) Checkout(ctx context.Context, req checkout.Request) (*checkout.Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func (c *checkoutMock) Status() checkout.Status {
	if c.status == "" {
		return checkout.StatusIdle
	}
	return c.status
}

type creatorMock struct {
	created []domain.ProductInput
	err     error
}

func (c *creatorMock) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.created = append(c.created, input)
	return &domain.Product{
		ID:       "prod-new",
		Title:    input.Title,
		Price:    input.Price,
		Type:     input.Type,
		SellerID: input.SellerID,
		IsActive: true,
	}, nil
}

type authMock struct {
	session   *backend.Session
	signInErr error
	outCalls  int
}

func (a *authMock) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	return a.session, nil
}

func (a *authMock) SignOut(ctx context.Context) error {
	a.outCalls++
	return nil
}
