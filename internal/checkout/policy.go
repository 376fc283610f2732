package checkout

import (
	"context"
	"fmt"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// CompletionPolicy decides what happens to an order after creation.
// A payment integration would gate the completed transition here.
type CompletionPolicy interface {
	Finalize(ctx context.Context, orders OrderBackend, order *domain.Order) error
}

// OptimisticCompletion marks the order completed immediately. There is
// no payment gate; digital goods ship on creation.
type OptimisticCompletion struct{}

func (OptimisticCompletion) Finalize(ctx context.Context, orders OrderBackend, order *domain.Order) error {
	if !domain.CanTransitionTo(order.Status, domain.OrderStatusCompleted) {
		return fmt.Errorf("order %s cannot move from %s to %s",
			order.ID, order.Status, domain.OrderStatusCompleted)
	}
	return orders.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusCompleted)
}
