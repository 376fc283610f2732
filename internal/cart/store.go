// Package cart holds the client-side cart: an insertion-ordered,
// in-memory collection mirrored to durable storage on every mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mtz196822-maker/digistore-araby/internal/domain"
	"github.com/mtz196822-maker/digistore-araby/internal/kv"
	"github.com/mtz196822-maker/digistore-araby/internal/notify"
)

const storageKey = "digistore_cart"

// Store owns the cart. Mutations are synchronous: the durable copy is
// written before the mutator returns, never deferred or batched. The
// write is always a full-value overwrite of the single cart key.
type Store struct {
	mu       sync.Mutex
	items    []domain.CartItem
	storage  kv.Store
	notifier notify.Notifier
	logger   zerolog.Logger
}

func NewStore(storage kv.Store, notifier notify.Notifier, logger zerolog.Logger) *Store {
	return &Store{
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// Hydrate loads the durable copy at session start. A missing key means
// a fresh cart, not an error.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := s.storage.Get(ctx, storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode stored cart: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// AddItem increments the quantity of an existing line or appends a new
// one with quantity 1, preserving insertion order.
func (s *Store) AddItem(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.CartItem{Product: product, Quantity: 1})
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.notifier.Notify(fmt.Sprintf("%q added to cart", product.Title), notify.SeveritySuccess)
}

// UpdateQuantity applies a delta, clamping at 1. Decrementing below 1
// is a no-op, not a removal. An unknown product ID is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			quantity := s.items[i].Quantity + delta
			if quantity < 1 {
				quantity = 1
			}
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// RemoveItem deletes the matching line; absent IDs are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if removed {
		s.notifier.Notify("item removed from cart", notify.SeverityInfo)
	}
}

// Clear empties the cart. Used only by successful checkout.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
}

// Cart returns a snapshot of the current contents.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return domain.Cart{Items: items}
}

// TotalItemCount is the badge count: the sum of quantities.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Cart{Items: s.items}.ItemCount()
}

// persist writes the full cart value. Callers hold the lock. A storage
// failure is fatal to the write, not to the process; the in-memory
// state stands either way.
func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err == nil {
		err = s.storage.Set(ctx, storageKey, data)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart")
	}
}
