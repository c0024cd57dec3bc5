package order

import (
	"context"
	"errors"
	"slices"
	"sync"

	domain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/modules/kvstore"
	"github.com/go-monolith/mono/pkg/types"
)

// StorageKey is the persisted key holding the order list.
const StorageKey = "orders"

// Listener is notified with a snapshot of all orders after each committed change.
type Listener func(orders []domain.Order)

// Book is the persisted list of placed orders.
type Book struct {
	orders    []domain.Order
	kv        kvstore.KVStore
	logger    types.Logger
	listeners map[int]Listener
	nextSub   int
	mu        sync.RWMutex
}

// NewBook creates an empty order book bound to kv. Call Load to restore persisted orders.
func NewBook(kv kvstore.KVStore, logger types.Logger) *Book {
	return &Book{
		orders:    []domain.Order{},
		kv:        kv,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Load replaces the in-memory orders with the persisted ones. A missing key leaves
// the book empty; an unreadable value is discarded with a warning.
func (b *Book) Load(ctx context.Context) {
	var orders []domain.Order
	if err := kvstore.GetJSON(ctx, b.kv, StorageKey, &orders); err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			b.logger.Warn("Discarding unreadable orders", "key", StorageKey, "error", err)
		}
		orders = nil
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()
}

// List returns a copy of all orders in placement order.
func (b *Book) List() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return snapshot(b.orders)
}

// Get returns the order with id.
func (b *Book) Get(id string) (domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, o := range b.orders {
		if o.ID == id {
			return copyOrder(o), nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

// Place appends o and persists the list.
func (b *Book) Place(ctx context.Context, o domain.Order) {
	b.mutate(ctx, func(orders []domain.Order) []domain.Order {
		return append(orders, copyOrder(o))
	})
}

// SetStatus overwrites the status of order id with any valid status, regardless
// of the current one. Every other field is left untouched. It returns the updated
// order and the status it replaced.
func (b *Book) SetStatus(ctx context.Context, id string, status domain.Status) (domain.Order, domain.Status, error) {
	if !status.Valid() {
		return domain.Order{}, "", ErrInvalidStatus
	}

	var (
		updated  domain.Order
		previous domain.Status
		found    bool
	)
	b.mutateIf(ctx, func(orders []domain.Order) ([]domain.Order, bool) {
		for i := range orders {
			if orders[i].ID == id {
				previous = orders[i].Status
				orders[i].Status = status
				updated = copyOrder(orders[i])
				found = true
				return orders, true
			}
		}
		return orders, false
	})

	if !found {
		return domain.Order{}, "", ErrOrderNotFound
	}
	return updated, previous, nil
}

// Subscribe registers l and returns a function that removes it.
func (b *Book) Subscribe(l Listener) func() {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.listeners[id] = l
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

func (b *Book) mutate(ctx context.Context, fn func([]domain.Order) []domain.Order) {
	b.mutateIf(ctx, func(orders []domain.Order) ([]domain.Order, bool) {
		return fn(orders), true
	})
}

// mutateIf applies fn under the write lock. When fn reports a change the list is
// persisted before the lock is released and listeners run afterwards.
func (b *Book) mutateIf(ctx context.Context, fn func([]domain.Order) ([]domain.Order, bool)) {
	b.mu.Lock()
	orders, changed := fn(b.orders)
	b.orders = orders
	if !changed {
		b.mu.Unlock()
		return
	}

	state := snapshot(b.orders)
	if err := kvstore.PutJSON(ctx, b.kv, StorageKey, state); err != nil {
		b.logger.Error("Failed to persist orders", "key", StorageKey, "error", err)
	}
	listeners := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.Unlock()

	for _, l := range listeners {
		l(snapshot(state))
	}
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}

func snapshot(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = copyOrder(o)
	}
	return out
}
