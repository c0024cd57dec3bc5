package cart

import (
	"context"
	"time"

	domain "github.com/example/storefront-demo/domain/cart"
	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
)

// getCart handles the get-cart service request.
func (m *Module) getCart(_ context.Context, _ GetCartRequest, _ *mono.Msg) (CartResponse, error) {
	return m.snapshot(), nil
}

// addItem handles the add-item service request. Each requested unit becomes its
// own line of quantity 1.
func (m *Module) addItem(ctx context.Context, req AddItemRequest, _ *mono.Msg) (AddItemResponse, error) {
	n := req.Quantity
	if n < 1 {
		n = 1
	}

	resp := AddItemResponse{}
	for i := 0; i < n; i++ {
		resp.Added = append(resp.Added, m.store.AddToCart(ctx, req.Product))
	}
	resp.Cart = m.snapshot()

	m.publish(events.CartActionAdded, "", req.Product.ID, resp.Cart)
	return resp, nil
}

// removeItem handles the remove-item service request.
func (m *Module) removeItem(ctx context.Context, req RemoveItemRequest, _ *mono.Msg) (CartResponse, error) {
	m.store.RemoveFromCart(ctx, req.CartID)
	resp := m.snapshot()
	m.publish(events.CartActionRemoved, req.CartID, "", resp)
	return resp, nil
}

// updateQuantity handles the update-quantity service request.
func (m *Module) updateQuantity(ctx context.Context, req UpdateQuantityRequest, _ *mono.Msg) (CartResponse, error) {
	m.store.UpdateQuantity(ctx, req.CartID, req.Quantity)
	resp := m.snapshot()

	action := events.CartActionQuantityChanged
	if req.Quantity <= 0 {
		action = events.CartActionRemoved
	}
	m.publish(action, req.CartID, "", resp)
	return resp, nil
}

// clearCart handles the clear-cart service request.
func (m *Module) clearCart(ctx context.Context, _ ClearCartRequest, _ *mono.Msg) (CartResponse, error) {
	m.store.ClearCart(ctx)
	resp := m.snapshot()
	m.publish(events.CartActionCleared, "", "", resp)
	return resp, nil
}

// takeCart handles the take-cart service request. The response holds the lines
// removed from the cart.
func (m *Module) takeCart(ctx context.Context, _ TakeCartRequest, _ *mono.Msg) (CartResponse, error) {
	items := m.store.Take(ctx)
	resp := CartResponse{
		Items:     items,
		Total:     domain.Total(items),
		ItemCount: domain.Count(items),
	}
	if len(items) > 0 {
		m.publish(events.CartActionCleared, "", "", CartResponse{Items: []domain.LineItem{}})
	}
	return resp, nil
}

func (m *Module) snapshot() CartResponse {
	items, total, count := m.store.State()
	return CartResponse{
		Items:     items,
		Total:     total,
		ItemCount: count,
	}
}

// publish emits CartUpdated. Event publishing is best-effort.
func (m *Module) publish(action, cartID, productID string, state CartResponse) {
	if m.eventBus == nil {
		return
	}
	event := events.CartUpdatedEvent{
		Action:    action,
		CartID:    cartID,
		ProductID: productID,
		ItemCount: state.ItemCount,
		Total:     state.Total,
		UpdatedAt: time.Now(),
	}
	if err := events.CartUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish CartUpdated event", "action", action, "error", err)
	}
}
