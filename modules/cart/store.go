package cart

import (
	"context"
	"errors"
	"sync"

	domain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/go-monolith/mono/pkg/types"
)

// StorageKey is the persisted key holding the cart document.
const StorageKey = "cart"

// Listener is notified with a snapshot of the items after each committed change.
type Listener func(items []domain.LineItem)

// Store holds the in-progress cart and writes it through to the KV store on
// every mutation.
type Store struct {
	items     []domain.LineItem
	kv        kvstore.KVStore
	newID     IDGenerator
	logger    types.Logger
	listeners map[int]Listener
	nextSub   int
	mu        sync.RWMutex
}

// NewStore creates an empty cart bound to kv. Call Load to restore persisted state.
func NewStore(kv kvstore.KVStore, newID IDGenerator, logger types.Logger) *Store {
	return &Store{
		items:     []domain.LineItem{},
		kv:        kv,
		newID:     newID,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Load replaces the in-memory cart with the persisted one. A missing key leaves the
// cart empty; an unreadable value is discarded with a warning.
func (s *Store) Load(ctx context.Context) {
	var items []domain.LineItem
	if err := kvstore.GetJSON(ctx, s.kv, StorageKey, &items); err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			s.logger.Warn("Discarding unreadable cart", "key", StorageKey, "error", err)
		}
		items = nil
	}
	if items == nil {
		items = []domain.LineItem{}
	}

	// Lines without an id, or sharing one, get a fresh id so every line stays addressable.
	repaired := false
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].CartID == "" || seen[items[i].CartID] {
			items[i].CartID = lineID(items[i].Product.ID, s.newID)
			repaired = true
		}
		seen[items[i].CartID] = true
	}

	s.mu.Lock()
	s.items = items
	if repaired {
		if err := kvstore.PutJSON(ctx, s.kv, StorageKey, items); err != nil {
			s.logger.Error("Failed to persist repaired cart", "key", StorageKey, "error", err)
		}
	}
	s.mu.Unlock()
}

// AddToCart appends a new line of quantity 1 for product. Lines are never merged.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product) domain.LineItem {
	item := domain.LineItem{
		Product:  product,
		Quantity: 1,
		CartID:   lineID(product.ID, s.newID),
	}

	s.mutate(ctx, func(items []domain.LineItem) []domain.LineItem {
		return append(items, item)
	})
	return item
}

// RemoveFromCart drops the line with cartID. Unknown ids are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, cartID string) {
	s.mutate(ctx, func(items []domain.LineItem) []domain.LineItem {
		return without(items, cartID)
	})
}

// UpdateQuantity sets the quantity of the line with cartID. A quantity of zero or
// less removes the line. There is no upper bound.
func (s *Store) UpdateQuantity(ctx context.Context, cartID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, cartID)
		return
	}
	s.mutate(ctx, func(items []domain.LineItem) []domain.LineItem {
		for i := range items {
			if items[i].CartID == cartID {
				items[i].Quantity = quantity
			}
		}
		return items
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, func([]domain.LineItem) []domain.LineItem {
		return []domain.LineItem{}
	})
}

// Take empties the cart and returns the lines it held. No change can land
// between the read and the clear.
func (s *Store) Take(ctx context.Context) []domain.LineItem {
	var taken []domain.LineItem
	s.mutate(ctx, func(items []domain.LineItem) []domain.LineItem {
		taken = snapshot(items)
		return []domain.LineItem{}
	})
	return taken
}

// State returns the lines with their total and unit count, read together.
func (s *Store) State() (items []domain.LineItem, total float64, count int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.items), domain.Total(s.items), domain.Count(s.items)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.items)
}

// Total returns the sum of price times quantity over all lines.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Total(s.items)
}

// ItemCount returns the number of units in the cart.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Count(s.items)
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// mutate applies fn and persists the result under the write lock, then notifies
// listeners outside it.
func (s *Store) mutate(ctx context.Context, fn func([]domain.LineItem) []domain.LineItem) {
	s.mu.Lock()
	s.items = fn(s.items)
	items := snapshot(s.items)
	if err := kvstore.PutJSON(ctx, s.kv, StorageKey, items); err != nil {
		s.logger.Error("Failed to persist cart", "key", StorageKey, "error", err)
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot(items))
	}
}

func without(items []domain.LineItem, cartID string) []domain.LineItem {
	out := items[:0]
	for _, item := range items {
		if item.CartID != cartID {
			out = append(out, item)
		}
	}
	return out
}

func snapshot(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}
