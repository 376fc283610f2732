package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
	"github.com/mtz196822-maker/digistore-araby/internal/kv"
)

const sessionStorageKey = "digistore_session"

// Client talks to a PostgREST-style backend over HTTP/JSON. Every call
// goes through a circuit breaker; an open breaker reads as
// ErrUnavailable like any other transport failure.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger

	// sessions is the optional durable copy of the auth session so a
	// restart can recover it. May be nil.
	sessions kv.Store

	mu      sync.Mutex
	session *Session
	subs    map[*Subscription]struct{}
}

var _ Service = (*Client)(nil)

func NewClient(baseURL, anonKey string, sessions kv.Store, logger zerolog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &Client{
		baseURL:  baseURL,
		anonKey:  anonKey,
		http:     &http.Client{Timeout: 15 * time.Second},
		breaker:  breaker,
		logger:   logger,
		sessions: sessions,
		subs:     make(map[*Subscription]struct{}),
	}
}

// --- auth ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/v1/token",
		url.Values{"grant_type": {"password"}},
		map[string]string{"email": email, "password": password}, nil)
	if err != nil {
		return nil, err
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" || token.User.ID == "" {
		return nil, ErrAuthFailed
	}

	session := &Session{
		UserID:      token.User.ID,
		AccessToken: token.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}
	c.storeSession(ctx, session)
	c.emit(AuthEvent{Type: AuthEventSignedIn, UserID: session.UserID})
	return session, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session != nil {
		if _, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil); err != nil {
			// The client-side session goes away regardless.
			c.logger.Warn().Err(err).Msg("backend logout failed")
		}
	}

	userID := ""
	if session != nil {
		userID = session.UserID
	}
	c.clearSession(ctx)
	c.emit(AuthEvent{Type: AuthEventSignedOut, UserID: userID})
	return nil
}

func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	if c.session != nil && !c.session.Expired() {
		session := *c.session
		c.mu.Unlock()
		return &session, nil
	}
	c.mu.Unlock()

	if c.sessions == nil {
		return nil, ErrNoSession
	}

	data, err := c.sessions.Get(ctx, sessionStorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode stored session: %w", err)
	}
	if session.Expired() {
		c.clearSession(ctx)
		return nil, ErrNoSession
	}

	c.mu.Lock()
	c.session = &session
	c.mu.Unlock()
	out := session
	return &out, nil
}

func (c *Client) storeSession(ctx context.Context, session *Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	if c.sessions == nil {
		return
	}
	data, err := json.Marshal(session)
	if err == nil {
		err = c.sessions.Set(ctx, sessionStorageKey, data)
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to persist session")
	}
}

func (c *Client) clearSession(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if c.sessions == nil {
		return
	}
	if err := c.sessions.Delete(ctx, sessionStorageKey); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear stored session")
	}
}

func (c *Client) Subscribe() *Subscription {
	var sub *Subscription
	sub = NewSubscription(func() {
		c.mu.Lock()
		delete(c.subs, sub)
		c.mu.Unlock()
	})

	c.mu.Lock()
	c.subs[sub] = struct{}{}
	c.mu.Unlock()
	return sub
}

func (c *Client) emit(ev AuthEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sub := range c.subs {
		if !sub.Publish(ev) {
			c.logger.Warn().Str("event", string(ev.Type)).Msg("auth event dropped, slow subscriber")
		}
	}
}

// --- profiles ---

func (c *Client) UserProfile(ctx context.Context, userID string) (*domain.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/rest/v1/users",
		url.Values{"id": {"eq." + userID}, "limit": {"1"}}, nil, nil)
	if err != nil {
		return nil, err
	}

	var users []domain.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("decode user profile: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

// --- catalog ---

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/rest/v1/products", url.Values{
		"is_active": {"eq.true"},
		"order":     {"created_at.desc"},
	}, nil, nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (c *Client) ListNews(ctx context.Context) ([]domain.NewsItem, error) {
	body, err := c.do(ctx, http.MethodGet, "/rest/v1/news", url.Values{
		"is_published": {"eq.true"},
		"order":        {"created_at.desc"},
		"limit":        {"10"},
	}, nil, nil)
	if err != nil {
		return nil, err
	}

	var news []domain.NewsItem
	if err := json.Unmarshal(body, &news); err != nil {
		return nil, fmt.Errorf("decode news: %w", err)
	}
	return news, nil
}

func (c *Client) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/rest/v1/products", nil, input,
		map[string]string{"Prefer": "return=representation"})
	if err != nil {
		return nil, err
	}

	product, err := decodeSingle[domain.Product](body)
	if err != nil {
		return nil, fmt.Errorf("decode created product: %w", err)
	}
	return product, nil
}

// --- orders ---

func (c *Client) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	headers := map[string]string{"Prefer": "return=representation"}
	if input.IdempotencyKey != "" {
		headers["Idempotency-Key"] = input.IdempotencyKey
	}

	body, err := c.do(ctx, http.MethodPost, "/rest/v1/orders", nil, input, headers)
	if err != nil {
		return nil, err
	}

	order, err := decodeSingle[domain.Order](body)
	if err != nil {
		return nil, fmt.Errorf("decode created order: %w", err)
	}
	return order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	patch := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	_, err := c.do(ctx, http.MethodPatch, "/rest/v1/orders",
		url.Values{"id": {"eq." + orderID}}, patch, nil)
	return err
}

// --- promo codes ---

type promoRow struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	MaxUses        int             `json:"max_uses"`
	CurrentUses    int             `json:"current_uses"`
	ValidUntil     *time.Time      `json:"valid_until"`
}

func (c *Client) ValidatePromoCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*PromoValidation, error) {
	body, err := c.do(ctx, http.MethodGet, "/rest/v1/promo_codes", url.Values{
		"code":      {"eq." + code},
		"is_active": {"eq.true"},
		"limit":     {"1"},
	}, nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []promoRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode promo codes: %w", err)
	}

	switch {
	case len(rows) == 0:
		return &PromoValidation{Reason: "promo code is invalid or expired"}, nil
	case rows[0].ValidUntil != nil && rows[0].ValidUntil.Before(time.Now()):
		return &PromoValidation{Reason: "promo code has expired"}, nil
	case rows[0].MaxUses > 0 && rows[0].CurrentUses >= rows[0].MaxUses:
		return &PromoValidation{Reason: "promo code usage limit reached"}, nil
	case orderAmount.LessThan(rows[0].MinOrderAmount):
		return &PromoValidation{Reason: fmt.Sprintf("order minimum is %s", rows[0].MinOrderAmount.StringFixed(2))}, nil
	}

	discount := rows[0].DiscountValue
	if rows[0].DiscountType == "percentage" {
		discount = orderAmount.Mul(rows[0].DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	}
	return &PromoValidation{Valid: true, Discount: discount}, nil
}

// --- transport ---

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, headers map[string]string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("Authorization", "Bearer "+c.bearerToken())
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			return nil, &statusError{code: resp.StatusCode, body: string(data)}
		}
		return data, nil
	})
	if err != nil {
		return nil, c.wrapError(method, path, err)
	}
	return body, nil
}

func (c *Client) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && !c.session.Expired() {
		return c.session.AccessToken
	}
	return c.anonKey
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.code, e.body)
}

func (c *Client) wrapError(method, path string, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.code == http.StatusNotFound || se.code == http.StatusNotAcceptable:
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		case se.code == http.StatusBadRequest || se.code == http.StatusUnauthorized || se.code == http.StatusForbidden:
			if path == "/auth/v1/token" {
				return fmt.Errorf("%s: %w", se.body, ErrAuthFailed)
			}
			return fmt.Errorf("%s %s: %v: %w", method, path, se, ErrUnavailable)
		default:
			return fmt.Errorf("%s %s: %v: %w", method, path, se, ErrUnavailable)
		}
	}
	// Transport failure or open breaker.
	return fmt.Errorf("%s %s: %v: %w", method, path, err, ErrUnavailable)
}

func decodeSingle[T any](body []byte) (*T, error) {
	// PostgREST returns created rows as a one-element array.
	var rows []T
	if err := json.Unmarshal(body, &rows); err == nil && len(rows) > 0 {
		return &rows[0], nil
	}
	var row T
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, err
	}
	return &row, nil
}
