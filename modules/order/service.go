package order

import (
	"context"
	"errors"
	"time"

	domain "github.com/example/storefront-demo/domain/order"
	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
)

// placeOrder handles the place-order service request.
func (m *Module) placeOrder(ctx context.Context, req PlaceOrderRequest, _ *mono.Msg) (PlaceOrderResponse, error) {
	placed, err := m.checkout.Place(ctx, req.Customer)
	switch {
	case errors.Is(err, ErrEmptyCart):
		return PlaceOrderResponse{Error: codeEmptyCart, Message: err.Error()}, nil
	case errors.Is(err, ErrInvalidCustomer):
		return PlaceOrderResponse{Error: codeInvalidCustomer, Message: err.Error()}, nil
	case err != nil:
		return PlaceOrderResponse{}, err
	}

	m.logger.Info("Order placed",
		"orderID", placed.ID,
		"items", len(placed.Items),
		"total", placed.Total)

	if m.eventBus != nil {
		event := events.OrderPlacedEvent{
			OrderID:           placed.ID,
			CustomerName:      placed.Customer.Name,
			CustomerEmail:     placed.Customer.Email,
			ItemCount:         len(placed.Items),
			Total:             placed.Total,
			PlacedAt:          placed.Date,
			EstimatedDelivery: placed.EstimatedDelivery,
		}
		if err := events.OrderPlacedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish OrderPlaced event", "orderID", placed.ID, "error", err)
		}
	}

	tracked := Track(placed)
	return PlaceOrderResponse{Order: &tracked}, nil
}

// listOrders handles the list-orders service request.
func (m *Module) listOrders(_ context.Context, _ ListOrdersRequest, _ *mono.Msg) (ListOrdersResponse, error) {
	orders := m.book.List()
	resp := ListOrdersResponse{
		Orders: make([]TrackedOrder, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, Track(o))
	}
	return resp, nil
}

// getOrder handles the get-order service request.
func (m *Module) getOrder(_ context.Context, req GetOrderRequest, _ *mono.Msg) (GetOrderResponse, error) {
	o, err := m.book.Get(req.OrderID)
	if err != nil {
		return GetOrderResponse{Found: false}, nil
	}
	tracked := Track(o)
	return GetOrderResponse{Order: &tracked, Found: true}, nil
}

// setStatus handles the set-status service request. Any valid status may replace
// any other.
func (m *Module) setStatus(ctx context.Context, req SetStatusRequest, _ *mono.Msg) (SetStatusResponse, error) {
	updated, previous, err := m.book.SetStatus(ctx, req.OrderID, domain.Status(req.Status))
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return SetStatusResponse{Error: codeInvalidStatus}, nil
	case errors.Is(err, ErrOrderNotFound):
		return SetStatusResponse{Found: false}, nil
	case err != nil:
		return SetStatusResponse{}, err
	}

	m.logger.Info("Order status changed",
		"orderID", updated.ID,
		"from", previous,
		"to", updated.Status)

	if m.eventBus != nil {
		event := events.OrderStatusChangedEvent{
			OrderID:        updated.ID,
			PreviousStatus: string(previous),
			Status:         string(updated.Status),
			ChangedAt:      time.Now(),
		}
		if err := events.OrderStatusChangedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish OrderStatusChanged event", "orderID", updated.ID, "error", err)
		}
	}

	tracked := Track(updated)
	return SetStatusResponse{
		Order:          &tracked,
		PreviousStatus: string(previous),
		Found:          true,
	}, nil
}
