package checkout

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/domain"
	"github.com/mtz196822-maker/digistore-araby/internal/notify"
)

type mockOrderBackend struct {
	mu sync.Mutex

	createErr     error
	createdStatus domain.OrderStatus
	createdOrders []domain.OrderInput
	createHook    func()

	updateErr     error
	updatedOrders []string
	updatedStatus []domain.OrderStatus

	promoResult *backend.PromoValidation
	promoErr    error
	promoCalls  []string
}

func (m *mockOrderBackend) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	m.mu.Lock()
	hook := m.createHook
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdOrders = append(m.createdOrders, input)
	status := m.createdStatus
	if status == "" {
		status = domain.OrderStatusPending
	}
	return &domain.Order{
		ID:             "order-1",
		UserID:         input.UserID,
		TotalAmount:    input.TotalAmount,
		TaxAmount:      input.TaxAmount,
		DiscountAmount: input.DiscountAmount,
		FinalAmount:    input.FinalAmount,
		Status:         status,
	}, nil
}

func (m *mockOrderBackend) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedOrders = append(m.updatedOrders, orderID)
	m.updatedStatus = append(m.updatedStatus, status)
	return nil
}

func (m *mockOrderBackend) ValidatePromoCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*backend.PromoValidation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promoCalls = append(m.promoCalls, code)
	if m.promoErr != nil {
		return nil, m.promoErr
	}
	if m.promoResult != nil {
		return m.promoResult, nil
	}
	return &backend.PromoValidation{Valid: true}, nil
}

func (m *mockOrderBackend) created() []domain.OrderInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.OrderInput(nil), m.createdOrders...)
}

func (m *mockOrderBackend) updated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.updatedOrders...)
}

type mockSessions struct {
	mu   sync.Mutex
	user *domain.User
}

func (m *mockSessions) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

type mockCart struct {
	mu      sync.Mutex
	items   []domain.CartItem
	cleared int
}

func (m *mockCart) Cart() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Cart{Items: append([]domain.CartItem(nil), m.items...)}
}

func (m *mockCart) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.cleared++
}

func (m *mockCart) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

type mockNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (m *mockNotifier) Notify(message string, severity notify.Severity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, notify.Notification{Message: message, Severity: severity})
}

func (m *mockNotifier) bySeverity(severity notify.Severity) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, n := range m.notes {
		if n.Severity == severity {
			out = append(out, n.Message)
		}
	}
	return out
}
