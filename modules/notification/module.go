package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Activity types recorded in the feed.
const (
	TypeCart         = "cart_updated"
	TypeOrderPlaced  = "order_placed"
	TypeOrderStatus  = "order_status_changed"
	TypeStockChanged = "stock_changed"
)

// ServiceListActivity is the activity feed service.
const ServiceListActivity = "list-activity"

// ListActivityRequest is the request for the activity feed.
type ListActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListActivityResponse is the response for the activity feed.
type ListActivityResponse struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

// NotificationModule records store events into an activity feed as a driven adapter.
type NotificationModule struct {
	feed   *Feed
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*NotificationModule)(nil)
	_ mono.EventConsumerModule   = (*NotificationModule)(nil)
	_ mono.ServiceProviderModule = (*NotificationModule)(nil)
	_ mono.HealthCheckableModule = (*NotificationModule)(nil)
)

// NewModule creates a new notification module.
func NewModule(capacity int, logger types.Logger) *NotificationModule {
	return &NotificationModule{
		feed:   NewFeed(capacity),
		logger: logger,
	}
}

// Name returns the module name.
func (m *NotificationModule) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to every store event.
func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.CartUpdatedV1, m.handleCartUpdated, m); err != nil {
		return fmt.Errorf("failed to register CartUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderPlacedV1, m.handleOrderPlaced, m); err != nil {
		return fmt.Errorf("failed to register OrderPlaced consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderStatusChangedV1, m.handleOrderStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register OrderStatusChanged consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.StockChangedV1, m.handleStockChanged, m); err != nil {
		return fmt.Errorf("failed to register StockChanged consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"CartUpdated", "OrderPlaced", "OrderStatusChanged", "StockChanged"})
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *NotificationModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListActivity, json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListActivity, err)
	}
	return nil
}

func (m *NotificationModule) handleCartUpdated(_ context.Context, event events.CartUpdatedEvent, _ *mono.Msg) error {
	subject := event.CartID
	if subject == "" {
		subject = event.ProductID
	}
	m.feed.Record(TypeCart, subject,
		fmt.Sprintf("Cart %s: %d items, total %.2f", event.Action, event.ItemCount, event.Total),
		event.UpdatedAt)
	return nil
}

func (m *NotificationModule) handleOrderPlaced(_ context.Context, event events.OrderPlacedEvent, _ *mono.Msg) error {
	m.logger.Info("Order placed", "orderID", event.OrderID, "customer", event.CustomerName)
	m.feed.Record(TypeOrderPlaced, event.OrderID,
		fmt.Sprintf("Order %s placed by %s for %.2f", event.OrderID, event.CustomerName, event.Total),
		event.PlacedAt)
	return nil
}

func (m *NotificationModule) handleOrderStatusChanged(_ context.Context, event events.OrderStatusChangedEvent, _ *mono.Msg) error {
	m.feed.Record(TypeOrderStatus, event.OrderID,
		fmt.Sprintf("Order %s moved from %s to %s", event.OrderID, event.PreviousStatus, event.Status),
		event.ChangedAt)
	return nil
}

func (m *NotificationModule) handleStockChanged(_ context.Context, event events.StockChangedEvent, _ *mono.Msg) error {
	message := fmt.Sprintf("%s stock %d -> %d", event.ProductName, event.PreviousStock, event.Stock)
	if event.LowStock {
		message += " (low stock)"
		m.logger.Warn("Product low on stock", "productID", event.ProductID, "stock", event.Stock)
	}
	m.feed.Record(TypeStockChanged, event.ProductID, message, event.ChangedAt)
	return nil
}

// listActivity handles the list-activity service request.
func (m *NotificationModule) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	activities := m.feed.Recent(req.Limit)
	return ListActivityResponse{
		Activities: activities,
		Total:      m.feed.Len(),
	}, nil
}

// Feed returns the activity feed.
func (m *NotificationModule) Feed() *Feed {
	return m.feed
}

// Start initializes the module.
func (m *NotificationModule) Start(_ context.Context) error {
	m.logger.Info("Notification module started - listening for store events")
	return nil
}

// Stop gracefully shuts down the module.
func (m *NotificationModule) Stop(_ context.Context) error {
	m.logger.Info("Notification module stopped", "activities", m.feed.Len())
	return nil
}

// Health returns the health status.
func (m *NotificationModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"activities": m.feed.Len(),
		},
	}
}
