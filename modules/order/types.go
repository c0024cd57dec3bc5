package order

import (
	"context"

	domain "github.com/example/storefront-demo/domain/order"
)

// Service names registered by the order module.
const (
	ServicePlaceOrder = "place-order"
	ServiceListOrders = "list-orders"
	ServiceGetOrder   = "get-order"
	ServiceSetStatus  = "set-status"
)

// Error codes carried in service responses.
const (
	codeEmptyCart       = "empty_cart"
	codeInvalidCustomer = "invalid_customer"
	codeInvalidStatus   = "invalid_status"
)

// TrackedOrder is an order together with its tracking progress.
type TrackedOrder struct {
	domain.Order
	Progress []domain.Stage `json:"progress"`
}

// Track attaches the progress indicator to o.
func Track(o domain.Order) TrackedOrder {
	return TrackedOrder{
		Order:    o,
		Progress: domain.Progress(o.Status),
	}
}

// PlaceOrderRequest is the checkout request.
type PlaceOrderRequest struct {
	Customer domain.Customer `json:"customer"`
}

// PlaceOrderResponse is the checkout response. Error holds an error code when the
// order was rejected.
type PlaceOrderResponse struct {
	Order   *TrackedOrder `json:"order,omitempty"`
	Error   string        `json:"error,omitempty"`
	Message string        `json:"message,omitempty"`
}

// ListOrdersRequest is the request for listing orders.
type ListOrdersRequest struct{}

// ListOrdersResponse is the response for listing orders.
type ListOrdersResponse struct {
	Orders []TrackedOrder `json:"orders"`
	Total  int            `json:"total"`
}

// GetOrderRequest is the request for getting one order.
type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

// GetOrderResponse is the response for getting one order.
type GetOrderResponse struct {
	Order *TrackedOrder `json:"order,omitempty"`
	Found bool          `json:"found"`
}

// SetStatusRequest is the admin request for changing an order status.
type SetStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// SetStatusResponse is the response for changing an order status.
type SetStatusResponse struct {
	Order          *TrackedOrder `json:"order,omitempty"`
	PreviousStatus string        `json:"previous_status,omitempty"`
	Found          bool          `json:"found"`
	Error          string        `json:"error,omitempty"`
}

// OrderPort defines the interface for order operations (hexagonal port).
type OrderPort interface {
	PlaceOrder(ctx context.Context, customer domain.Customer) (*TrackedOrder, error)
	ListOrders(ctx context.Context) ([]TrackedOrder, error)
	GetOrder(ctx context.Context, orderID string) (*TrackedOrder, error)
	SetStatus(ctx context.Context, orderID string, status domain.Status) (*TrackedOrder, error)
}
