package order

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/storefront-demo/domain/order"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// orderAdapter wraps ServiceContainer for type-safe cross-module communication.
type orderAdapter struct {
	container mono.ServiceContainer
}

// NewOrderAdapter creates a new adapter for order services.
// container is the ServiceContainer from the order module received via SetDependencyServiceContainer.
func NewOrderAdapter(container mono.ServiceContainer) OrderPort {
	if container == nil {
		panic("order adapter requires non-nil ServiceContainer")
	}
	return &orderAdapter{container: container}
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

// PlaceOrder checks out the current cart via the place-order service.
func (a *orderAdapter) PlaceOrder(ctx context.Context, customer domain.Customer) (*TrackedOrder, error) {
	req := PlaceOrderRequest{Customer: customer}
	var resp PlaceOrderResponse
	if err := callService(ctx, a.container, ServicePlaceOrder, &req, &resp); err != nil {
		return nil, err
	}

	switch resp.Error {
	case "":
	case codeEmptyCart:
		return nil, ErrEmptyCart
	case codeInvalidCustomer:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCustomer, resp.Message)
	default:
		return nil, fmt.Errorf("place-order failed: %s", resp.Message)
	}
	return resp.Order, nil
}

// ListOrders returns every order with its progress via the list-orders service.
func (a *orderAdapter) ListOrders(ctx context.Context) ([]TrackedOrder, error) {
	var resp ListOrdersResponse
	if err := callService(ctx, a.container, ServiceListOrders, &ListOrdersRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetOrder retrieves one order via the get-order service.
func (a *orderAdapter) GetOrder(ctx context.Context, orderID string) (*TrackedOrder, error) {
	req := GetOrderRequest{OrderID: orderID}
	var resp GetOrderResponse
	if err := callService(ctx, a.container, ServiceGetOrder, &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return resp.Order, nil
}

// SetStatus changes an order status via the set-status service.
func (a *orderAdapter) SetStatus(ctx context.Context, orderID string, status domain.Status) (*TrackedOrder, error) {
	req := SetStatusRequest{OrderID: orderID, Status: string(status)}
	var resp SetStatusResponse
	if err := callService(ctx, a.container, ServiceSetStatus, &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error == codeInvalidStatus {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if !resp.Found {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return resp.Order, nil
}
