package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/storefront-demo/domain/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// cartAdapter wraps ServiceContainer for type-safe cross-module communication.
type cartAdapter struct {
	container mono.ServiceContainer
}

// NewCartAdapter creates a new adapter for cart services.
// container is the ServiceContainer from the cart module received via SetDependencyServiceContainer.
func NewCartAdapter(container mono.ServiceContainer) CartPort {
	if container == nil {
		panic("cart adapter requires non-nil ServiceContainer")
	}
	return &cartAdapter{container: container}
}

// callService runs one typed request-reply round trip against container.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// GetCart returns the current cart via the get-cart service.
func (a *cartAdapter) GetCart(ctx context.Context) (*CartResponse, error) {
	var resp CartResponse
	if err := callService(ctx, a.container, ServiceGetCart, &GetCartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddItem adds quantity lines of product via the add-item service.
func (a *cartAdapter) AddItem(ctx context.Context, product catalog.Product, quantity int) (*AddItemResponse, error) {
	req := AddItemRequest{Product: product, Quantity: quantity}
	var resp AddItemResponse
	if err := callService(ctx, a.container, ServiceAddItem, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveItem removes a line via the remove-item service.
func (a *cartAdapter) RemoveItem(ctx context.Context, cartID string) (*CartResponse, error) {
	req := RemoveItemRequest{CartID: cartID}
	var resp CartResponse
	if err := callService(ctx, a.container, ServiceRemoveItem, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateQuantity changes a line quantity via the update-quantity service.
func (a *cartAdapter) UpdateQuantity(ctx context.Context, cartID string, quantity int) (*CartResponse, error) {
	req := UpdateQuantityRequest{CartID: cartID, Quantity: quantity}
	var resp CartResponse
	if err := callService(ctx, a.container, ServiceUpdateQuantity, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearCart empties the cart via the clear-cart service.
func (a *cartAdapter) ClearCart(ctx context.Context) (*CartResponse, error) {
	var resp CartResponse
	if err := callService(ctx, a.container, ServiceClearCart, &ClearCartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TakeCart empties the cart and returns the removed lines via the take-cart service.
func (a *cartAdapter) TakeCart(ctx context.Context) (*CartResponse, error) {
	var resp CartResponse
	if err := callService(ctx, a.container, ServiceTakeCart, &TakeCartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
